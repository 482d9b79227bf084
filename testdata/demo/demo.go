// Package demo contains fixture declarations for exercising recgen by hand:
//
//	recgen -output gen ./testdata/demo
package demo

import "time"

//go:recgen:builder
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}

//go:recgen:interface
type Named interface {
	Name() string
	Age() int
}

//go:recgen:interface=builder=false
type Labeled interface {
	Label() string
}

//go:recgen:builder:include=targets="time.Time",pattern="@.gen"
type includeHost struct{}
