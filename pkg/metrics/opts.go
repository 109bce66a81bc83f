// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const DefaultMetricsNamespace = "sails_verifier"

type mOpts struct {
	name          string
	help          string
	namespace     *string
	labels        map[string]string
	withoutSuffix bool
}

type OptsFunc func(*mOpts)

func WithNamespace(namespace string) OptsFunc {
	return func(o *mOpts) {
		o.namespace = &namespace
	}
}

func WithLabels(labels map[string]string) OptsFunc {
	return func(o *mOpts) {
		o.labels = labels
	}
}

func WithoutSuffix() OptsFunc {
	return func(o *mOpts) {
		o.withoutSuffix = true
	}
}

func (o *mOpts) getNamespace() string {
	if o.namespace != nil {
		return *o.namespace
	}
	return DefaultMetricsNamespace
}

func (o *mOpts) getHelp(kind string) string {
	help := o.help
	if help == "" {
		help = o.name
	}
	return fmt.Sprintf("%s (%s)", help, kind)
}

func (o *mOpts) getName(suffix string) string {
	if o.withoutSuffix {
		return o.name
	}
	return o.name + suffix
}

func (o *mOpts) GetCounterOpts() prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   o.getNamespace(),
		Name:        o.getName("_c"),
		Help:        o.getHelp("counters"),
		ConstLabels: o.labels,
	}
}

func (o *mOpts) GetGaugeOpts() prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   o.getNamespace(),
		Name:        o.getName("_g"),
		Help:        o.getHelp("gauge"),
		ConstLabels: o.labels,
	}
}
