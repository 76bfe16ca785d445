// Package usecase はcountriesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"worldexplorer/internal/feature/countries/domain/entity"
)

// Regions は検索可能な地域の一覧です。
var Regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

var codePattern = regexp.MustCompile(`^[A-Za-z]{2,3}$`)

// CountryRepository は国データの取得元を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CountryRepository interface {
	// All は全ての国を返します。
	All(ctx context.Context) ([]entity.Country, error)
	// ByName は名前に部分一致する国を返します。該当なしの場合 ErrCountryNotFound を返します。
	ByName(ctx context.Context, name string) ([]entity.Country, error)
	// ByRegion は指定地域の国を返します。
	ByRegion(ctx context.Context, region string) ([]entity.Country, error)
	// ByCode はalpha-2/alpha-3コードで国を返します。該当なしの場合 ErrCountryNotFound を返します。
	ByCode(ctx context.Context, code string) (*entity.Country, error)
	// ByCodes は複数コードの国をまとめて返します。
	ByCodes(ctx context.Context, codes []string) ([]entity.Country, error)
}

// countriesUsecase は国データの閲覧ロジックを実装します。
type countriesUsecase struct {
	repo CountryRepository
}

// NewCountriesUsecase はcountriesUsecaseの新しいインスタンスを生成します。
func NewCountriesUsecase(repo CountryRepository) *countriesUsecase {
	return &countriesUsecase{repo: repo}
}

// List returns every country sorted by common name.
func (u *countriesUsecase) List(ctx context.Context) ([]entity.Country, error) {
	countries, err := u.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	sortByName(countries)
	return countries, nil
}

// Search returns countries whose name contains name, sorted by common name.
func (u *countriesUsecase) Search(ctx context.Context, name string) ([]entity.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "Please enter a country name to search"}
	}

	countries, err := u.repo.ByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrCountryNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to search countries %q: %w", name, err)
	}
	sortByName(countries)
	return countries, nil
}

// Region returns the countries of one of Regions, sorted by common name.
// The region is matched case-insensitively.
func (u *countriesUsecase) Region(ctx context.Context, region string) ([]entity.Country, error) {
	canonical, ok := CanonicalRegion(region)
	if !ok {
		return nil, &ValidationError{
			Field:   "region",
			Message: fmt.Sprintf("Invalid region. Choose one of: %s", strings.Join(Regions, ", ")),
		}
	}

	countries, err := u.repo.ByRegion(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries in %s: %w", canonical, err)
	}
	sortByName(countries)
	return countries, nil
}

// Detail returns a country and its bordering countries.
// A failed border lookup degrades to an empty neighbour list.
func (u *countriesUsecase) Detail(ctx context.Context, code string) (*entity.CountryDetail, error) {
	code = strings.TrimSpace(code)
	if !codePattern.MatchString(code) {
		return nil, &ValidationError{Field: "code", Message: "Invalid country code"}
	}

	country, err := u.repo.ByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, ErrCountryNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to fetch country %s: %w", code, err)
	}

	detail := &entity.CountryDetail{Country: *country, Borders: []entity.Country{}}
	if len(country.Borders) == 0 {
		return detail, nil
	}

	borders, err := u.repo.ByCodes(ctx, country.Borders)
	if err != nil {
		slog.Warn("failed to fetch border countries", "code", country.Code, "error", err)
		return detail, nil
	}
	sortByName(borders)
	detail.Borders = borders
	return detail, nil
}

// CanonicalRegion maps a case-insensitive region name onto Regions.
func CanonicalRegion(region string) (string, bool) {
	region = strings.TrimSpace(region)
	for _, r := range Regions {
		if strings.EqualFold(r, region) {
			return r, true
		}
	}
	return "", false
}

func sortByName(countries []entity.Country) {
	slices.SortStableFunc(countries, func(a, b entity.Country) int {
		return strings.Compare(a.Name, b.Name)
	})
}
