/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/avast/retry-go"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/speech-profile-tools/internal/report"
)

var emailRetryDelay = 500 * time.Millisecond

type SendEmailConfig struct {
	DbPath string
	Index  int
	From   string
	To     string
	DryRun bool
	ApiKey string
}

// mailSender is the part of the SendGrid client sendEmail uses.
type mailSender interface {
	Send(email *mail.SGMailV3) (int, error)
}

type sendgridSender struct {
	client *sendgrid.Client
}

func (s sendgridSender) Send(email *mail.SGMailV3) (int, error) {
	resp, err := s.client.Send(email)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode, nil
}

// statusError is a non-2xx response from the mail API.
type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("mail API returned status %d", e.code)
}

var emailCmd = &cobra.Command{
	Use:   "email <index> <address>",
	Short: "Emails a short feedback summary of an archived report",
	Long:  `Sends the id, primary pattern, dominance and stability of the report at <index> to <address>.`,
	Args:  cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		index, err := parseIndex(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		config := SendEmailConfig{
			DbPath: viper.GetString("database"),
			Index:  index,
			From:   viper.GetString("from"),
			To:     args[1],
			DryRun: viper.GetBool("dryRun"),
			ApiKey: viper.GetString("sendgrid_api_key"),
		}

		var sender mailSender
		if !config.DryRun {
			if config.ApiKey == "" {
				fmt.Println("sendgrid_api_key must be set in order to send emails")
				os.Exit(1)
			}
			sender = sendgridSender{client: sendgrid.NewSendClient(config.ApiKey)}
		}
		if err := sendEmail(config, sender); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))
}

func sendEmail(config SendEmailConfig, sender mailSender) error {
	r, err := getArchived(config.DbPath, config.Index)
	if err != nil {
		return err
	}
	subject, body := generateEmailContent(r)

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, body)
		return nil
	}

	from := mail.NewEmail("speech-profile-tools", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmailPlainText(from, subject, to, body)

	err = retry.Do(
		func() error {
			code, err := sender.Send(message)
			if err != nil {
				return err
			}
			if code/100 != 2 {
				return statusError{code: code}
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(emailRetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if serr, ok := err.(statusError); ok && serr.code/100 == 5 {
				fmt.Printf("mail API errored, retrying: %v\n", serr)
				return true
			}
			return false
		}),
	)
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}

	fmt.Printf("Sent report %s to %s\n", r.ID, config.To)
	return nil
}

func generateEmailContent(r *report.Report) (subject string, body string) {
	subject = "Active Intercept: " + r.ID
	body = fmt.Sprintf("Analysis for %s:\nPattern: %s\nDominance: %d%%\nStability: %d%%\n",
		r.ID, r.PrimaryPattern, percent(r.Core.Dominance), percent(r.Core.Stability))
	return subject, body
}

func percent(v float64) int {
	return int(math.Floor(v * 100))
}
