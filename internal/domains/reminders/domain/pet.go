package domain

// AdoptedPet is the already-resolved view of a pet an adopter may schedule care for.
type AdoptedPet struct {
	ID      string
	UserID  string
	Name    string
	Species string
}
