package probe

import (
	"context"

	"github.com/hamed0406/statuswatch/internal/domain"
)

// Checker performs a single check for a given target URL.
// Implementations never return errors: every failure is an Unhealthy result.
type Checker interface {
	Check(ctx context.Context, target string) domain.CheckResult
}
