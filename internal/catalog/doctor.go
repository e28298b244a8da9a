package catalog

// Doctor is one entry of the static catalog. The dataset is owned
// externally and loaded read-only at startup; nothing here mutates it.
type Doctor struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Age              int      `json:"age,omitempty"`
	Specialty        string   `json:"specialty"`
	ExperienceYears  int      `json:"experience_years"`
	Hospital         string   `json:"hospital"`
	Rating           float64  `json:"rating"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	Location         string   `json:"location"`
	ConsultationFee  float64  `json:"consultation_fee_usd"`
	Languages        []string `json:"languages"`
}
