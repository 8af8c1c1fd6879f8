package listing

type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusCompleted, StatusExpired, StatusCancelled:
		return true
	default:
		return false
	}
}

type Category string

const (
	CategoryProduce      Category = "produce"
	CategoryDairy        Category = "dairy"
	CategoryMeat         Category = "meat"
	CategoryBakery       Category = "bakery"
	CategoryPreparedFood Category = "prepared_food"
	CategoryCanned       Category = "canned"
	CategoryOther        Category = "other"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryProduce, CategoryDairy, CategoryMeat, CategoryBakery, CategoryPreparedFood, CategoryCanned, CategoryOther:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

type Unit string

const (
	UnitKg       Unit = "kg"
	UnitLbs      Unit = "lbs"
	UnitServings Unit = "servings"
	UnitItems    Unit = "items"
	UnitBoxes    Unit = "boxes"
)

func (u Unit) String() string {
	return string(u)
}

func (u Unit) IsValid() bool {
	switch u {
	case UnitKg, UnitLbs, UnitServings, UnitItems, UnitBoxes:
		return true
	default:
		return false
	}
}

func NewUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.IsValid() {
		return "", ErrInvalidUnit
	}
	return u, nil
}

type StorageRequirement string

const (
	StorageRefrigerated    StorageRequirement = "refrigerated"
	StorageFrozen          StorageRequirement = "frozen"
	StorageRoomTemperature StorageRequirement = "room_temperature"
)

func (s StorageRequirement) String() string {
	return string(s)
}

func (s StorageRequirement) IsValid() bool {
	switch s {
	case StorageRefrigerated, StorageFrozen, StorageRoomTemperature:
		return true
	default:
		return false
	}
}

func NewStorageRequirement(s string) (StorageRequirement, error) {
	sr := StorageRequirement(s)
	if !sr.IsValid() {
		return "", ErrInvalidStorageRequirement
	}
	return sr, nil
}
