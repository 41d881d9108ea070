package domain

// ActorRole is the role of an authenticated caller
type ActorRole string

const (
	RoleClient       ActorRole = "client"
	RoleProfessional ActorRole = "professional"
)

// IsValid returns true for a known role
func (r ActorRole) IsValid() bool {
	return r == RoleClient || r == RoleProfessional
}

// Actor is an authenticated caller. ID is the client id for clients
// and the professional id for professionals
type Actor struct {
	UserID int64
	Role   ActorRole
	ID     int64
}

// IsClient returns true if the actor acts as a client
func (a Actor) IsClient() bool {
	return a.Role == RoleClient && a.ID > 0
}

// IsProfessional returns true if the actor acts as a professional
func (a Actor) IsProfessional() bool {
	return a.Role == RoleProfessional && a.ID > 0
}

// IsProfessionalOf returns true if the actor is the given professional
func (a Actor) IsProfessionalOf(professionalID int64) bool {
	return a.IsProfessional() && a.ID == professionalID
}

// OwnsAppointment returns true if the actor is the client or the professional of the appointment
func (a Actor) OwnsAppointment(appt *Appointment) bool {
	switch a.Role {
	case RoleClient:
		return a.ID > 0 && appt.ClientID == a.ID
	case RoleProfessional:
		return a.ID > 0 && appt.ProfessionalID == a.ID
	default:
		return false
	}
}
