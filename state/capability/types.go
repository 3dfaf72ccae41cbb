package capability

import (
	"errors"
	"strings"

	"etch/engine/library"
)

// Role identifies a capability. Roles are 64 character hex strings.
type Role = library.Sha256

// DefaultAdminRole may grant and revoke every role, including itself.
var DefaultAdminRole Role = strings.Repeat("0", 64)

// MinterRole gates post creation and update.
var MinterRole Role = library.Sha256String("MINTER_ROLE")

var ErrUnauthorized = errors.New("unauthorized")

// Roles is the persisted form of the store: role to sorted member accounts.
type Roles map[Role][]library.Account
