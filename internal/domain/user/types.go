package user

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleFoodDonor    Role = "food_donor"
	RoleRecipientOrg Role = "recipient_org"
	RoleDataAnalyst  Role = "data_analyst"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFoodDonor, RoleRecipientOrg, RoleDataAnalyst:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// RecipientType classifies recipient organizations; empty for other roles.
type RecipientType string

const (
	RecipientFoodBank        RecipientType = "food_bank"
	RecipientShelter         RecipientType = "shelter"
	RecipientCommunityCenter RecipientType = "community_center"
	RecipientCharity         RecipientType = "charity"
	RecipientOther           RecipientType = "other"
)

func (t RecipientType) String() string {
	return string(t)
}

func (t RecipientType) IsValid() bool {
	switch t {
	case RecipientFoodBank, RecipientShelter, RecipientCommunityCenter, RecipientCharity, RecipientOther:
		return true
	default:
		return false
	}
}

func NewRecipientType(s string) (RecipientType, error) {
	t := RecipientType(s)
	if !t.IsValid() {
		return "", ErrInvalidRecipientType
	}
	return t, nil
}
