package models

// Product represents a listing owned by a seller. ID and Seller are fixed at
// creation; every other field may be replaced by the seller.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       Amount    `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	IsActive    bool      `json:"isActive"`
	Seller      AccountID `json:"seller"`
}

// ProductInput carries the caller-supplied fields for create and update.
type ProductInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Amount `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"isActive"`
}

// Active returns the requested active flag, defaulting to true.
func (in ProductInput) Active() bool {
	if in.IsActive == nil {
		return true
	}
	return *in.IsActive
}
