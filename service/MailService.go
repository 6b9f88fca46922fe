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
	"fmt"
	"net/smtp"

	"github.com/upwardright/rebalancing-backend/rebalancing-service/config"
)

type MailService interface {
	SendVerificationCode(to string, code string) error
}

func NewMailService(cfg config.MailConfig) MailService {
	return &mailServiceImpl{cfg: cfg}
}

type mailServiceImpl struct {
	cfg config.MailConfig
}

func (m mailServiceImpl) SendVerificationCode(to string, code string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: UpwardRight email verification\r\n\r\nYour verification code is %s\r\n",
		m.cfg.From, to, code)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
