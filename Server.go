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

package main

import (
	"flag"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/cache"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/client"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/controller"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/crypto"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/db"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/metrics"
	midldleware "github.com/upwardright/rebalancing-backend/rebalancing-service/middleware"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/repository"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/security"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/service"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	configFile := flag.String("config", os.Getenv("UPR_CONFIG_FILE"), "path to the yaml configuration file")
	flag.Parse()

	systemConfig, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err.Error())
	}

	setupLogging(systemConfig.TechnicalParameters)
	utils.PrintConfig(systemConfig)

	connectionProvider := db.NewConnectionProvider(&systemConfig.Database)
	if err := db.EnsureSchema(connectionProvider); err != nil {
		log.Fatalf("Failed to prepare database schema: %s", err.Error())
	}

	olricProvider, err := cache.NewOlricProvider(systemConfig.Olric)
	if err != nil {
		log.Fatalf("Failed to start olric cache: %s", err.Error())
	}

	keyStore, err := crypto.NewKeyStore(systemConfig.Security.Keys.Directory)
	if err != nil {
		log.Fatalf("Failed to initialize credential key store: %s", err.Error())
	}

	if err := security.SetupGoGuardian(systemConfig.Security.Jwt); err != nil {
		log.Fatalf("Failed to set up authentication: %s", err.Error())
	}

	metrics.RegisterAllPrometheusApplicationMetrics()

	userRepository := repository.NewUserRepository(connectionProvider)
	accountRepository := repository.NewAccountRepository(connectionProvider)
	rebalancingRepository := repository.NewRebalancingRepository(connectionProvider)

	aggregatorClient := client.NewCodefClient(systemConfig.Aggregator, keyStore)

	userService := service.NewUserService(userRepository)
	mailService := service.NewMailService(systemConfig.Mail)
	verificationService := service.NewVerificationService(olricProvider, mailService, systemConfig.Verification)
	accountService := service.NewAccountService(accountRepository, aggregatorClient)
	rebalancingService := service.NewRebalancingService(rebalancingRepository)

	readyChan := make(chan bool)
	healthController := controller.NewHealthController(readyChan)
	loginController := controller.NewLoginController(userService)
	signController := controller.NewSignController(userService, verificationService)
	accountController := controller.NewAccountController(accountService)
	rebalancingController := controller.NewRebalancingController(rebalancingService)
	membershipController := controller.NewMembershipController(userService)

	r := mux.NewRouter()
	r.Use(midldleware.PrometheusMiddleware)

	r.HandleFunc("/live", security.NoSecure(healthController.HandleLiveRequest)).Methods(http.MethodGet)
	r.HandleFunc("/ready", security.NoSecure(healthController.HandleReadyRequest)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/upwardright/login", security.NoSecure(loginController.Login)).Methods(http.MethodPost)
	r.HandleFunc("/upwardright/signup", security.NoSecure(signController.SignUp)).Methods(http.MethodPost)
	r.HandleFunc("/upwardright/emails/send", security.NoSecure(signController.SendVerificationCode)).Methods(http.MethodPost)
	r.HandleFunc("/upwardright/emails/verify", security.NoSecure(signController.VerifyCode)).Methods(http.MethodPost)

	r.HandleFunc("/upwardright/addstockaccount", security.Secure(accountController.AddStockAccount)).Methods(http.MethodPost)
	r.HandleFunc("/upwardright/showstockaccounts", security.Secure(accountController.ShowStockAccounts)).Methods(http.MethodGet)
	r.HandleFunc("/upwardright/getAccountStock", security.Secure(accountController.GetAccountStock)).Methods(http.MethodPost)
	r.HandleFunc("/upwardright/saverebalancing", security.Secure(rebalancingController.SaveRebalancing)).Methods(http.MethodPost)
	r.HandleFunc("/upwardright/saverebalancingstock", security.Secure(rebalancingController.SaveRebalancingStocks)).Methods(http.MethodPost)
	r.HandleFunc("/upwardright/rebalancings", security.Secure(rebalancingController.GetRebalancings)).Methods(http.MethodGet)
	r.HandleFunc("/upwardright/rebalancings/{recordId}/stocks", security.Secure(rebalancingController.GetRebalancingStocks)).Methods(http.MethodGet)
	r.HandleFunc("/upwardright/membership/upgrade", security.Secure(membershipController.UpgradeMembership)).Methods(http.MethodPost)

	corsOptions := []handlers.CORSOption{
		handlers.AllowedOrigins(systemConfig.Security.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Cache-Control", "Content-Type"}),
		handlers.AllowCredentials(),
	}

	utils.SafeAsync(func() {
		readyChan <- true
	})

	log.Infof("Server is listening on %s", systemConfig.TechnicalParameters.ListenAddress)
	log.Fatalf("Server stopped: %v",
		http.ListenAndServe(systemConfig.TechnicalParameters.ListenAddress, handlers.CORS(corsOptions...)(r)))
}

func setupLogging(params config.TechnicalParameters) {
	log.SetFormatter(&prefixed.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	})

	level, err := log.ParseLevel(params.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if params.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   params.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}))
	}
}
