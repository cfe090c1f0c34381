package reporting

import (
	"fmt"
	"log"

	"github.com/getsentry/sentry-go"

	"pktfwd/pkg/globals"
)

// Init configures crash reporting with the fleet application as the
// environment and the gateway as the user. Does nothing when no DSN is
// configured.
func Init(dsn, deviceID, appName string) error {
	if dsn == "" {
		log.Println("Skipping crash reporting: no DSN configured")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: appName,
		Release:     globals.FirmwareVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize crash reporting: %w", err)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetUser(sentry.User{ID: deviceID})
	})

	return nil
}
