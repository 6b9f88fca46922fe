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

package service

import (
	"net/http"
	"sync"
	"time"

	"github.com/buraksezer/olric"
	log "github.com/sirupsen/logrus"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/cache"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/crypto"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/exception"
	"github.com/upwardright/rebalancing-backend/rebalancing-service/utils"
)

const verificationCodesDMap = "EmailVerificationCodes"
const verificationCodeLength = 6

// VerificationService hands out short-lived email verification codes. Codes
// live in the olric cache with a TTL, an expired code simply disappears and
// verification fails.
type VerificationService interface {
	SendCode(email string) error
	VerifyCode(email string, code string) (bool, error)
}

func NewVerificationService(op cache.OlricProvider, mailService MailService, cfg config.VerificationConfig) VerificationService {
	service := &verificationServiceImpl{
		op:             op,
		mailService:    mailService,
		codeExpiration: time.Second * time.Duration(cfg.CodeExpirationSec),
		isReadyWg:      sync.WaitGroup{},
	}
	service.isReadyWg.Add(1)
	utils.SafeAsync(func() {
		service.initWhenOlricReady()
	})
	return service
}

type verificationServiceImpl struct {
	op             cache.OlricProvider
	mailService    MailService
	codes          *olric.DMap
	codeExpiration time.Duration
	isReadyWg      sync.WaitGroup
}

func (v *verificationServiceImpl) initWhenOlricReady() {
	var err error
	olricCache := v.op.Get()
	v.codes, err = olricCache.NewDMap(verificationCodesDMap)
	if err != nil {
		log.Errorf("Failed to create %s dmap: %s", verificationCodesDMap, err.Error())
	}
	v.isReadyWg.Done()
}

func (v *verificationServiceImpl) SendCode(email string) error {
	v.isReadyWg.Wait()

	code := crypto.RandomDigits(verificationCodeLength)
	if err := v.mailService.SendVerificationCode(email, code); err != nil {
		log.Errorf("Failed to send verification email: %s", err.Error())
		return &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Code:    exception.EmailSendFailed,
			Message: exception.EmailSendFailedMsg,
			Params:  map[string]interface{}{"email": email},
			Debug:   err.Error(),
		}
	}
	return v.codes.PutEx(email, code, v.codeExpiration)
}

func (v *verificationServiceImpl) VerifyCode(email string, code string) (bool, error) {
	v.isReadyWg.Wait()

	stored, err := v.codes.Get(email)
	if err != nil {
		if err == olric.ErrKeyNotFound {
			return false, nil
		}
		return false, err
	}
	storedCode, ok := stored.(string)
	if !ok || storedCode != code {
		return false, nil
	}
	// a code is single-use
	_ = v.codes.Delete(email)
	return true, nil
}
