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

package jsonrpc

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/direct-state-transfer/fundme/log"
)

// Paths served by the server.
const (
	PathHTTP      = "/"
	PathWebsocket = "/ws"
	PathMetrics   = "/metrics"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves the API over http and websocket. If a metrics handler is
// given, it is served at PathMetrics.
type Server struct {
	log.Logger

	rpc  *rpc.Server
	http *http.Server
}

// NewServer registers the API for the node and returns a server for it.
func NewServer(n NodeAPI, metrics http.Handler) (*Server, error) {
	rpcSrv := rpc.NewServer()
	if err := rpcSrv.RegisterName(Namespace, NewFundMeAPI(n)); err != nil {
		return nil, errors.Wrap(err, "registering api")
	}

	r := mux.NewRouter()
	r.Handle(PathWebsocket, rpcSrv.WebsocketHandler([]string{"*"}))
	if metrics != nil {
		r.Handle(PathMetrics, metrics).Methods(http.MethodGet)
	}
	r.Handle(PathHTTP, rpcSrv).Methods(http.MethodPost, http.MethodOptions)

	return &Server{
		Logger: log.NewLoggerWithField("api", "server"),
		rpc:    rpcSrv,
		http: &http.Server{
			Handler:      r,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}, nil
}

// Serve accepts connections on the listener until Close is called.
func (s *Server) Serve(l net.Listener) error {
	s.Logger.Infof("Serving json-rpc api at %s", l.Addr())
	err := s.http.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(err, "serving json-rpc api")
}

// Close stops the server and closes the open connections.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.rpc.Stop()
	return errors.Wrap(s.http.Shutdown(ctx), "shutting down http server")
}
