package treatment

import (
	"github.com/smallbiznis/clinicdesk/internal/treatment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("treatment.service",
	fx.Provide(service.New),
)
