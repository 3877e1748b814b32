package types

// Identifiable реализуют все персистентные сущности. Нулевой id означает,
// что запись ещё не сохранена на сервере.
type Identifiable interface {
	EntityID() int64
}

// PhoneOwner is implemented by entities that carry a contact phone number.
// The items container relies on it for the self-identity check.
type PhoneOwner interface {
	Phone() string
}
