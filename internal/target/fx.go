package target

import (
	"github.com/smallbiznis/clinicdesk/internal/target/service"
	"go.uber.org/fx"
)

var Module = fx.Module("target.service",
	fx.Provide(service.New),
)
