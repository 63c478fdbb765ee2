package models

// Message is a single turn of the intake conversation, as handed over by the
// conversation engine. The vault never inspects Content; it only encrypts it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CandidateRecord is the plain candidate snapshot produced by the
// conversation engine. It is immutable from the vault's point of view:
// saving never mutates the input.
type CandidateRecord struct {
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	YearsExperience  string   `json:"years_experience"`
	DesiredPositions []string `json:"desired_positions"`
	CurrentLocation  string   `json:"current_location"`
	TechStack        []string `json:"tech_stack"`
}

// HasPersonalInfo reports whether the record carries a name.
func (c *CandidateRecord) HasPersonalInfo() bool {
	return c.FullName != ""
}

// HasContactInfo reports whether the record carries an email address.
func (c *CandidateRecord) HasContactInfo() bool {
	return c.Email != ""
}
