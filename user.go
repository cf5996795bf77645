package podpointclient

// User is the account profile returned by the auth resource.
type User struct {
	ID            int              `json:"id"`
	Email         string           `json:"email"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Role          string           `json:"role"`
	HasHomeCharge int              `json:"hasHomeCharge"`
	Locale        string           `json:"locale"`
	Preferences   []UserPreference `json:"preferences"`
	Account       *UserAccount     `json:"account"`
	Vehicle       *Vehicle         `json:"vehicle"`
	Unit          *Unit            `json:"unit"`
}

type UserPreference struct {
	UnitOfDistance string `json:"unitOfDistance"`
}

type UserAccount struct {
	UserID         int     `json:"user_id"`
	UID            string  `json:"uid"`
	Balance        int     `json:"balance"`
	Currency       string  `json:"currency"`
	BillingAddress Address `json:"billing_address"`
	Phone          string  `json:"phone"`
	Mobile         string  `json:"mobile"`
}

type Address struct {
	BusinessName string `json:"business_name"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Town         string `json:"town"`
	Postcode     string `json:"postcode"`
	Country      string `json:"country"`
}

type Vehicle struct {
	ID              int         `json:"id"`
	UUID            string      `json:"uuid"`
	Name            string      `json:"name"`
	Capacity        int         `json:"capacity"`
	BatteryCapacity float64     `json:"batteryCapacity"`
	StartYear       int         `json:"startYear"`
	EndYear         int         `json:"endYear"`
	Image           *Image      `json:"image"`
	Make            VehicleMake `json:"make"`
}

type VehicleMake struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo Image  `json:"logo"`
}

// Image holds the resolution variants the API names @1x/@2x/@3x.
type Image struct {
	HalfSize string `json:"@1x"`
	Standard string `json:"@2x"`
	Original string `json:"@3x"`
}

// Unit summarizes the charger unit attached to the account.
type Unit struct {
	ID           int    `json:"id"`
	PPID         string `json:"ppid"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Architecture string `json:"architecture"`
	Pod          *Pod   `json:"pod"`
}

type userEnvelope struct {
	Users *User `json:"users"`
}
