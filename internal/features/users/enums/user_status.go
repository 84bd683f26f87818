package users_enums

type UserStatus string

const (
	UserStatusInvited   UserStatus = "INVITED"
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusInvited, UserStatusActive, UserStatusSuspended:
		return true
	default:
		return false
	}
}
