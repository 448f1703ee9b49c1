package domain

// Certificate is any transaction certificate. Only stake (de)registrations
// affect the lovelace to be covered by inputs.
type Certificate interface {
	HasStakeRegistration() bool
	HasStakeDeregistration() bool
}

type StakeCertificateType int

const (
	StakeRegistration StakeCertificateType = iota
	StakeDeregistration
	StakeDelegation
)

// StakeCertificate is a certificate about the given stake credential.
type StakeCertificate struct {
	Type            StakeCertificateType
	StakeCredential string
}

func (c StakeCertificate) HasStakeRegistration() bool {
	return c.Type == StakeRegistration
}

func (c StakeCertificate) HasStakeDeregistration() bool {
	return c.Type == StakeDeregistration
}
