package queue

// Routing keys on the topic exchange. The notify worker binds "email.*".
const (
	KeyEmailOTP      = "email.otp"
	KeyEmailWelcome  = "email.welcome"
	KeyEmailAdoption = "email.adoption"
)

type EmailOTP struct {
	To   string `json:"to"`
	Name string `json:"name"`
	OTP  string `json:"otp"`
}

type EmailWelcome struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

type EmailAdoption struct {
	To      string `json:"to"`
	PetName string `json:"pet_name"`
	Status  string `json:"status"`
}
