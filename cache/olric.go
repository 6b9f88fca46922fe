// Copyright 2024-2025 UpwardRight
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

package cache

import (
	"encoding/gob"
	"math/rand"
	"net"
	"strconv"
	"sync"

	"github.com/buraksezer/olric"
	"github.com/buraksezer/olric/config"
	log "github.com/sirupsen/logrus"
	sysconfig "github.com/upwardright/rebalancing-backend/rebalancing-service/config"
)

type OlricProvider interface {
	Get() *olric.Olric
	GetBindAddr() string
}

const olricBindAddr = "0.0.0.0"

type olricProviderImpl struct {
	wg     sync.WaitGroup
	cfg    *config.Config
	olricC *olric.Olric
}

func NewOlricProvider(olricConfig sysconfig.OlricConfig) (OlricProvider, error) {
	prov := &olricProviderImpl{wg: sync.WaitGroup{}}

	var err error
	gob.Register(map[string]interface{}{})
	prov.cfg = getConfig(olricConfig)

	prov.wg.Add(1)

	prov.cfg.Started = prov.startCallback

	prov.olricC, err = olric.New(prov.cfg)
	if err != nil {
		return nil, err
	}

	go func() {
		err = prov.olricC.Start()
		if err != nil {
			log.Panicf("Olric cache node cannot be started. Error: %s", err.Error())
		}
	}()

	return prov, nil
}

func (op *olricProviderImpl) startCallback() {
	op.wg.Done()
}

func (op *olricProviderImpl) Get() *olric.Olric {
	op.wg.Wait()
	return op.olricC
}

func (op *olricProviderImpl) GetBindAddr() string {
	op.wg.Wait()
	return op.cfg.BindAddr
}

func getConfig(olricConfig sysconfig.OlricConfig) *config.Config {
	mode := olricConfig.DiscoveryMode
	if mode != "local" {
		log.Warnf("Unknown olric discovery mode %s. Will use default \"local\" mode", mode)
		mode = "local"
	}
	log.Info("Olric run in local mode")
	cfg := config.New(mode)

	cfg.LogLevel = "WARN"
	cfg.LogVerbosity = 2

	cfg.BindAddr = olricBindAddr
	cfg.BindPort = getLocalPort()
	cfg.MemberlistConfig.BindAddr = olricBindAddr
	cfg.MemberlistConfig.BindPort = getLocalMemberlistPort()
	cfg.PartitionCount = 5

	return cfg
}

func getLocalPort() int {
	//try specific port first
	port := 47375
	if isPortFree(olricBindAddr, port) {
		return port
	}
	//and if fails, then random
	return getLocalRandomFreePort()
}
func getLocalMemberlistPort() int {
	//try specific port first
	port := 47376
	if isPortFree(olricBindAddr, port) {
		return port
	}
	//and if fails, then random
	return getLocalRandomFreePort()
}

func getLocalRandomFreePort() int {
	for {
		port := rand.Intn(48127) + 1024
		if isPortFree(olricBindAddr, port) {
			return port
		}
	}
}

func isPortFree(address string, port int) bool {
	ln, err := net.Listen("tcp", address+":"+strconv.Itoa(port))

	if err != nil {
		return false
	}

	_ = ln.Close()
	return true
}
