package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess   = "success"
	resultDuplicate = "duplicate"
	resultInvalid   = "invalid"
	resultError     = "error"
)

var (
	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogapi",
			Name:      "auth_signups_total",
			Help:      "Signup attempts by result",
		},
		[]string{"result"},
	)

	signinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogapi",
			Name:      "auth_signins_total",
			Help:      "Signin attempts by result",
		},
		[]string{"result"},
	)

	ownershipDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogapi",
			Name:      "ownership_denials_total",
			Help:      "Mutations refused because the principal does not own the blog",
		},
		[]string{"action"},
	)
)
