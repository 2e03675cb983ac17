package appointment

import (
	"github.com/smallbiznis/clinicdesk/internal/appointment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("appointment.service",
	fx.Provide(service.New),
)
