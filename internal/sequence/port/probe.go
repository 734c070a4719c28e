package port

import "context"

//go:generate mockgen -destination=mocks/probe_mock.go -package=mocks -source=probe.go

// AuthorityProbe checks that the range authority is reachable.
type AuthorityProbe interface {
	Ping(ctx context.Context) error
}
