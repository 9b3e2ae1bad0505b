// Copyright (c) 2020 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/fundme
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exports prometheus metrics about contract operations.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/direct-state-transfer/fundme"
)

const namespace = "fundme"

// ResultOK is the result label of successful operations. Failed operations
// are labelled with their error code.
const ResultOK = "ok"

var slotBuckets = prometheus.ExponentialBuckets(1, 2, 12)

// Metrics collects operation counters and storage access histograms. It
// implements the contract.Recorder interface.
type Metrics struct {
	registry      *prometheus.Registry
	ops           *prometheus.CounterVec
	storageReads  *prometheus.HistogramVec
	storageWrites *prometheus.HistogramVec
	transferred   prometheus.Counter
}

// New creates the metrics and registers them, along with the go runtime and
// process collectors, on a new registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contract",
			Name:      "operations_total",
			Help:      "Number of contract operations by operation and result",
		}, []string{"op", "result"}),
		storageReads: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "contract",
			Name:      "storage_reads",
			Help:      "Storage slots read by successful contract operations",
			Buckets:   slotBuckets,
		}, []string{"op"}),
		storageWrites: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "contract",
			Name:      "storage_writes",
			Help:      "Storage slots written by successful contract operations",
			Buckets:   slotBuckets,
		}, []string{"op"}),
		transferred: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contract",
			Name:      "withdrawn_eth_total",
			Help:      "ETH transferred out of the contract by withdrawals",
		}),
	}
	m.registry.MustRegister(
		m.ops, m.storageReads, m.storageWrites, m.transferred,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordOp implements contract.Recorder.
func (m *Metrics) RecordOp(op string, receipt fundme.Receipt, err error) {
	if err != nil {
		m.ops.WithLabelValues(op, strconv.Itoa(int(fundme.CodeOf(err)))).Inc()
		return
	}
	m.ops.WithLabelValues(op, ResultOK).Inc()
	m.storageReads.WithLabelValues(op).Observe(float64(receipt.StorageReads))
	m.storageWrites.WithLabelValues(op).Observe(float64(receipt.StorageWrites))
	if receipt.Transferred != nil && receipt.Transferred.Sign() > 0 {
		eth, _ := decimal.NewFromBigInt(receipt.Transferred, -18).Float64()
		m.transferred.Add(eth)
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the http handler serving the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
