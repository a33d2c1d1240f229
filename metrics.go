// Copyright 2026 Blink Labs Software
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

package quorum

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type coordinatorMetrics struct {
	proposalsCreated   prometheus.Counter
	signaturesAccepted prometheus.Counter
	proposalsReady     prometheus.Counter
	proposalsExpired   prometheus.Counter
	executions         *prometheus.CounterVec
}

func (c *Coordinator) initMetrics(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	c.metrics = &coordinatorMetrics{
		proposalsCreated: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "quorum_proposals_created_total",
				Help: "total proposals created",
			},
		),
		signaturesAccepted: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "quorum_signatures_accepted_total",
				Help: "total signatures accepted",
			},
		),
		proposalsReady: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "quorum_proposals_ready_total",
				Help: "total proposals that reached quorum",
			},
		),
		proposalsExpired: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: "quorum_proposals_expired_total",
				Help: "total proposals marked expired",
			},
		),
		executions: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quorum_executions_total",
				Help: "total execution attempts by result",
			},
			[]string{"result"},
		),
	}
}
