package domain

import "time"

// MaxTimeAlive caps the requested instance lifetime at roughly 180 days.
const MaxTimeAlive = 15552000

// DefaultContainerPort is used when the image declares no port label.
const DefaultContainerPort = 80

// PortLabel is the image label carrying the internal service port.
const PortLabel = "lycosidae.port"

type InstanceState string

const (
	StateStarting InstanceState = "starting"
	StateRunning  InstanceState = "running"
	StateStopping InstanceState = "stopping"
	StateDeleted  InstanceState = "deleted"
)

// Instance is one running exercise environment created from an image.
type Instance struct {
	// ID is assigned by the container engine once the instance is created.
	ID string

	// Name is the sanitized, engine-unique label derived from the exercise name.
	Name string

	// Image is the source image reference.
	Image string

	HostPort      int
	ContainerPort int

	// TimeAlive is the requested lifetime in seconds; 0 means persistent.
	TimeAlive int

	// CallbackURL, when set, is notified after automatic expiry.
	CallbackURL string

	CreatedAt time.Time

	// ExpireAt is zero when TimeAlive is 0.
	ExpireAt time.Time

	State InstanceState
}

// ExpiryNotice is the payload posted to CallbackURL on automatic expiry.
type ExpiryNotice struct {
	ContainerID string `json:"container_id"`
	Status      string `json:"status"`
}
