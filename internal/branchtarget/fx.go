package branchtarget

import (
	"github.com/smallbiznis/clinicdesk/internal/branchtarget/service"
	"go.uber.org/fx"
)

var Module = fx.Module("branchtarget.service",
	fx.Provide(service.New),
)
