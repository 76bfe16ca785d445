// Package handler はcountriesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"worldexplorer/internal/api"
	"worldexplorer/internal/feature/countries/domain/entity"
	"worldexplorer/internal/feature/countries/usecase"
)

const (
	msgCountryNotFound = "Country not found"
	msgUpstreamFailed  = "Failed to fetch country data. Please try again later."
)

// CountriesUsecase は国データ閲覧のユースケースを定義します。
type CountriesUsecase interface {
	List(ctx context.Context) ([]entity.Country, error)
	Search(ctx context.Context, name string) ([]entity.Country, error)
	Region(ctx context.Context, region string) ([]entity.Country, error)
	Detail(ctx context.Context, code string) (*entity.CountryDetail, error)
}

// CountriesHandler は国データのHTTPリクエストを処理します。
type CountriesHandler struct {
	countries CountriesUsecase
}

// NewCountriesHandler はCountriesHandlerの新しいインスタンスを生成します。
func NewCountriesHandler(countries CountriesUsecase) *CountriesHandler {
	return &CountriesHandler{countries: countries}
}

// List handles GET /countries.
func (h *CountriesHandler) List(c *gin.Context) {
	countries, err := h.countries.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgCountryNotFound)
		return
	}
	c.JSON(http.StatusOK, api.CountryListResponse{Success: true, Data: toAPICountries(countries)})
}

// Search handles GET /countries/search?name=.
func (h *CountriesHandler) Search(c *gin.Context) {
	name := c.Query("name")
	countries, err := h.countries.Search(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err, fmt.Sprintf("No countries found matching %q", name))
		return
	}
	c.JSON(http.StatusOK, api.CountryListResponse{Success: true, Data: toAPICountries(countries)})
}

// Region handles GET /countries/region/:region.
func (h *CountriesHandler) Region(c *gin.Context) {
	countries, err := h.countries.Region(c.Request.Context(), c.Param("region"))
	if err != nil {
		h.fail(c, err, msgCountryNotFound)
		return
	}
	c.JSON(http.StatusOK, api.CountryListResponse{Success: true, Data: toAPICountries(countries)})
}

// Detail handles GET /countries/:code.
func (h *CountriesHandler) Detail(c *gin.Context) {
	detail, err := h.countries.Detail(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.fail(c, err, msgCountryNotFound)
		return
	}
	c.JSON(http.StatusOK, api.CountryDetailResponse{
		Success: true,
		Data: api.CountryDetail{
			Country: toAPICountry(detail.Country),
			Borders: toAPICountries(detail.Borders),
		},
	})
}

// fail maps usecase errors onto status codes.
// - 入力不備は400、該当なしは404、上流の障害は502
func (h *CountriesHandler) fail(c *gin.Context, err error, notFoundMsg string) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: ve.Message})
	case errors.Is(err, usecase.ErrCountryNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Message: notFoundMsg})
	default:
		slog.Error("country lookup failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Message: msgUpstreamFailed})
	}
}

func toAPICountries(countries []entity.Country) []api.Country {
	out := make([]api.Country, 0, len(countries))
	for _, c := range countries {
		out = append(out, toAPICountry(c))
	}
	return out
}

func toAPICountry(c entity.Country) api.Country {
	currencies := make([]api.Currency, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		currencies = append(currencies, api.Currency{Code: cur.Code, Name: cur.Name, Symbol: cur.Symbol})
	}
	capital := c.Capital
	if capital == nil {
		capital = []string{}
	}
	return api.Country{
		Code:         c.Code,
		Name:         c.Name,
		OfficialName: c.OfficialName,
		FlagURL:      c.FlagURL,
		Population:   c.Population,
		Region:       c.Region,
		Subregion:    c.Subregion,
		Capital:      capital,
		Languages:    c.Languages,
		Currencies:   currencies,
		Area:         c.Area,
		Timezones:    c.Timezones,
		TLD:          c.TLD,
		DrivingSide:  c.DrivingSide,
		UNMember:     c.UNMember,
		MapURL:       c.MapURL,
		Borders:      c.Borders,
	}
}
