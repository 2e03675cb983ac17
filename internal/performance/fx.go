package performance

import (
	"github.com/smallbiznis/clinicdesk/internal/performance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("performance.service",
	fx.Provide(service.New),
)
