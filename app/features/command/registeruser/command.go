package registeruser

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

const (
	commandType = "RegisterUser"
)

// Command represents the intent to create an API user.
type Command struct {
	Username     string
	Password     string
	RegisteredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. The username is trimmed, the password is kept as is.
func BuildCommand(username string, password string, registeredAt time.Time) Command {
	return Command{
		Username:     strings.TrimSpace(username),
		Password:     password,
		RegisteredAt: core.ToTimestamp(registeredAt),
	}
}

// Validate reports every missing field at once.
func (c Command) Validate() error {
	fields := map[string][]string{}

	if c.Username == "" {
		fields["username"] = []string{"Username is required"}
	}

	if c.Password == "" {
		fields["password"] = []string{"Password is required"}
	}

	return core.ValidationOrNil(fields)
}
