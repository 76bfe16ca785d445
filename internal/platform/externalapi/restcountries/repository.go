package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"worldexplorer/internal/feature/countries/domain/entity"
	"worldexplorer/internal/feature/countries/usecase"
	"worldexplorer/internal/platform/externalapi/restcountries/dto"
	"worldexplorer/internal/shared/ratelimiter"
)

// listFields はリスト表示に必要なフィールドだけを要求します（/all はfields指定が必須）。
const listFields = "name,cca3,flags,population,region,subregion,capital"

// RestCountriesRepository はREST Countries外部APIから国データを取得するCountryRepository実装です。
type RestCountriesRepository struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// RestCountriesRepositoryがCountryRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CountryRepository = (*RestCountriesRepository)(nil)

// NewRestCountriesRepository は指定された設定とHTTPクライアントでRestCountriesRepositoryの新しいインスタンスを生成します。
// limiter が nil の場合は流量制限を行いません。
func NewRestCountriesRepository(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *RestCountriesRepository {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	}
	return &RestCountriesRepository{cfg: cfg, client: client, limiter: limiter}
}

// All は全ての国を取得します。
func (r *RestCountriesRepository) All(ctx context.Context) ([]entity.Country, error) {
	q := url.Values{}
	q.Set("fields", listFields)
	return r.getList(ctx, "/all", q)
}

// ByName は名前で国を検索します。
func (r *RestCountriesRepository) ByName(ctx context.Context, name string) ([]entity.Country, error) {
	return r.getList(ctx, "/name/"+url.PathEscape(name), nil)
}

// ByRegion は地域で国を取得します。
func (r *RestCountriesRepository) ByRegion(ctx context.Context, region string) ([]entity.Country, error) {
	return r.getList(ctx, "/region/"+url.PathEscape(region), nil)
}

// ByCode はalphaコードで国を1件取得します。
func (r *RestCountriesRepository) ByCode(ctx context.Context, code string) (*entity.Country, error) {
	countries, err := r.getList(ctx, "/alpha/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}
	if len(countries) == 0 {
		return nil, usecase.ErrCountryNotFound
	}
	return &countries[0], nil
}

// ByCodes は複数のalphaコードの国をまとめて取得します。
func (r *RestCountriesRepository) ByCodes(ctx context.Context, codes []string) ([]entity.Country, error) {
	if len(codes) == 0 {
		return []entity.Country{}, nil
	}
	q := url.Values{}
	q.Set("codes", strings.Join(codes, ","))
	return r.getList(ctx, "/alpha", q)
}

// getList はGETリクエストを送り、国の配列レスポンスをエンティティに変換します。
func (r *RestCountriesRepository) getList(ctx context.Context, path string, q url.Values) ([]entity.Country, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrUpstream, err)
	}

	// URLを生成
	u := r.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrUpstream, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return nil, usecase.ErrCountryNotFound
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: restcountries http %d%s", usecase.ErrUpstream, res.StatusCode, upstreamMessage(res.Body))
	}

	// JSONレスポンスをDTOにデコード
	var body []dto.CountryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", usecase.ErrUpstream, err)
	}

	countries := make([]entity.Country, 0, len(body))
	for _, c := range body {
		countries = append(countries, toEntity(c))
	}
	return countries, nil
}

// upstreamMessage extracts the message of an error body, if any.
func upstreamMessage(body io.Reader) string {
	var e dto.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&e); err != nil || e.Message == "" {
		return ""
	}
	return ": " + e.Message
}

// toEntity はDTOをドメインエンティティに変換します。
func toEntity(c dto.CountryResponse) entity.Country {
	languages := make([]string, 0, len(c.Languages))
	for _, l := range c.Languages {
		languages = append(languages, l)
	}
	slices.Sort(languages)

	currencies := make([]entity.Currency, 0, len(c.Currencies))
	for code, cur := range c.Currencies {
		currencies = append(currencies, entity.Currency{Code: code, Name: cur.Name, Symbol: cur.Symbol})
	}
	slices.SortFunc(currencies, func(a, b entity.Currency) int {
		return strings.Compare(a.Code, b.Code)
	})

	flag := c.Flags.SVG
	if flag == "" {
		flag = c.Flags.PNG
	}

	return entity.Country{
		Code:         c.CCA3,
		Name:         c.Name.Common,
		OfficialName: c.Name.Official,
		FlagURL:      flag,
		Population:   c.Population,
		Region:       c.Region,
		Subregion:    c.Subregion,
		Capital:      c.Capital,
		Languages:    languages,
		Currencies:   currencies,
		Area:         c.Area,
		Timezones:    c.Timezones,
		TLD:          c.TLD,
		DrivingSide:  c.Car.Side,
		UNMember:     c.UNMember,
		MapURL:       c.Maps.GoogleMaps,
		Borders:      c.Borders,
	}
}

