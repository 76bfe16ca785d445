package usecase

import (
	"context"
	"log/slog"
)

// WarmResult は事前取得の結果を表します。
type WarmResult struct {
	Loaded int
	Failed int
}

// Warm はキャッシュを温めるため、全件リストと全地域を順に取得します。
// 1件失敗しても処理を止めずにログに出力し、次の処理を続けます。
func (u *countriesUsecase) Warm(ctx context.Context) WarmResult {
	var res WarmResult

	if _, err := u.repo.All(ctx); err != nil {
		slog.Error("failed to warm country list", "error", err)
		res.Failed++
	} else {
		res.Loaded++
	}

	for i, region := range Regions {
		if ctx.Err() != nil {
			res.Failed += len(Regions) - i
			break
		}
		if _, err := u.repo.ByRegion(ctx, region); err != nil {
			slog.Error("failed to warm region", "region", region, "error", err)
			res.Failed++
			continue // 次の地域へ
		}
		res.Loaded++
	}
	return res
}
