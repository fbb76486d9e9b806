package models

// AppData is the whole persisted document. Top-level JSON keys are the unit
// of merging when a saved copy is laid over the seed.
type AppData struct {
	Users            []User          `json:"users"`
	EventDetails     EventDetails    `json:"eventDetails"`
	AdminCredentials AdminCredential `json:"adminCredentials"`
	Payments         []Payment       `json:"payments"`
	Notifications    []Notification  `json:"notifications"`
}

// Clone returns a deep copy.
func (d AppData) Clone() AppData {
	out := d
	out.Users = make([]User, len(d.Users))
	for i, u := range d.Users {
		if u.Timestamp != nil {
			ts := *u.Timestamp
			u.Timestamp = &ts
		}
		out.Users[i] = u
	}
	out.Payments = append([]Payment(nil), d.Payments...)
	out.Notifications = append([]Notification(nil), d.Notifications...)
	if out.Payments == nil {
		out.Payments = []Payment{}
	}
	if out.Notifications == nil {
		out.Notifications = []Notification{}
	}
	return out
}

// FindUser returns the user with id, or nil.
func (d *AppData) FindUser(id int64) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// PaidUsers returns users whose status is paid, in store order.
func (d AppData) PaidUsers() []User {
	var out []User
	for _, u := range d.Users {
		if u.IsPaid() {
			out = append(out, u)
		}
	}
	return out
}

// PendingUsers returns users still owing the fee, in store order.
func (d AppData) PendingUsers() []User {
	var out []User
	for _, u := range d.Users {
		if u.PaymentStatus == StatusPending {
			out = append(out, u)
		}
	}
	return out
}

// CollectedTotal sums amounts over paid users.
func (d AppData) CollectedTotal() int {
	total := 0
	for _, u := range d.Users {
		if u.IsPaid() {
			total += u.Amount
		}
	}
	return total
}
