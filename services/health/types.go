package health

import "fx-rates/services/ratestore"

const jobName = "Check app running"

type StatusProvider interface {
	Status() ratestore.Status
}

type Impl struct {
	store StatusProvider
}
