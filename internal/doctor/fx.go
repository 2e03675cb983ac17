package doctor

import (
	"github.com/smallbiznis/clinicdesk/internal/doctor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("doctor.service",
	fx.Provide(service.New),
)
