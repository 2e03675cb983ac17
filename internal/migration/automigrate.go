package migration

import (
	"fmt"

	appointmentdomain "github.com/smallbiznis/clinicdesk/internal/appointment/domain"
	billdomain "github.com/smallbiznis/clinicdesk/internal/bill/domain"
	branchtargetdomain "github.com/smallbiznis/clinicdesk/internal/branchtarget/domain"
	clientdomain "github.com/smallbiznis/clinicdesk/internal/client/domain"
	doctordomain "github.com/smallbiznis/clinicdesk/internal/doctor/domain"
	staffdomain "github.com/smallbiznis/clinicdesk/internal/staff/domain"
	targetdomain "github.com/smallbiznis/clinicdesk/internal/target/domain"
	treatmentdomain "github.com/smallbiznis/clinicdesk/internal/treatment/domain"
	"gorm.io/gorm"
)

// Models lists every persisted record type.
func Models() []any {
	return []any{
		&doctordomain.Doctor{},
		&staffdomain.Staff{},
		&clientdomain.Client{},
		&treatmentdomain.Treatment{},
		&appointmentdomain.Appointment{},
		&billdomain.Bill{},
		&targetdomain.Target{},
		&branchtargetdomain.BranchTarget{},
	}
}

// AutoMigrate builds the schema from the models for dialects without SQL
// migrations.
func AutoMigrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
