// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CrawX/go-imap-replier/classifier/rspamd"
	"github.com/CrawX/go-imap-replier/classifier/spamassassin"
	"github.com/CrawX/go-imap-replier/config"
	"github.com/CrawX/go-imap-replier/domain"
	"github.com/CrawX/go-imap-replier/journal"
	"github.com/CrawX/go-imap-replier/log"
	"github.com/CrawX/go-imap-replier/mailgateway"
	"github.com/CrawX/go-imap-replier/replyengine"
	"github.com/CrawX/go-imap-replier/responder"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	envFile    string
	dryRun     bool
	sendTest   bool
}

func main() {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:          "go-imap-replier",
		Short:        "Answer unread mails with generated replies",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}
	rootCmd.PersistentFlags().StringVar(&o.configFile, "config", "config.toml", "Path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&o.envFile, "env-file", ".env", "Path to a dotenv file")
	rootCmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Draft replies without sending them or touching the mailbox")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify mailbox login and completion API access",
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(cmd.Context(), o)
		},
	}
	checkCmd.Flags().BoolVar(&o.sendTest, "send-test", false, "Send a test mail to the configured account")
	rootCmd.AddCommand(checkCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func setup(o *options) (*config.Config, *log.Loggers, *logrus.Logger, error) {
	conf, err := config.ReadConfig(o.configFile, o.envFile)
	if err != nil {
		logger := log.NewLoggers("info").Logger(log.LOG_MAIN)
		logger.WithField("error", err).Error("Could not load config")
		return nil, nil, nil, err
	}

	loggers := log.NewLoggers(conf.Loglevel)
	return conf, loggers, loggers.Logger(log.LOG_MAIN), nil
}

func run(ctx context.Context, o *options) error {
	conf, loggers, logger, err := setup(o)
	if err != nil {
		return err
	}

	configs := []responder.ConfigFunc{
		responder.OwnAddresses(conf.Mail.Sender(), conf.Mail.Username),
	}
	if conf.DryRun || o.dryRun {
		logger.Warn("Dry run, replies are only logged")
		configs = append(configs, responder.DryRun())
	}
	if conf.MarkSeen {
		configs = append(configs, responder.MarkSeen())
	}
	if len(conf.ProcessedFolder) > 0 {
		configs = append(configs, responder.MoveProcessed(conf.ProcessedFolder))
	}

	if len(conf.Database) > 0 {
		j, err := journal.NewJournal(conf.Database, loggers.Logger(log.LOG_JOURNAL))
		if err != nil {
			logger.WithField("error", err).Error("Could not open journal")
			return err
		}
		defer j.Close()
		configs = append(configs, responder.UseJournal(j))
	}

	classifier, err := spamClassifier(ctx, conf, loggers.Logger(log.LOG_SPAM))
	if err != nil {
		logger.WithField("error", err).Error("Could not start spam classifier")
		return err
	}
	if classifier != nil {
		configs = append(configs, responder.FilterSpam(classifier))
	}

	gw := mailgateway.NewGateway(conf.Mail, loggers)
	defer gw.Close()

	engine := replyengine.NewEngine(conf.LLM, loggers.Logger(log.LOG_REPLY))

	r, err := responder.NewResponder(gw, engine, loggers.Logger(log.LOG_RESPONDER), configs...)
	if err != nil {
		logger.WithField("error", err).Error("Could not start responder")
		return err
	}

	logger.WithFields(logrus.Fields{
		"server":    conf.Mail.ImapAddress(),
		"folder":    conf.Mail.Folder,
		"model":     conf.LLM.Model,
		"markseen":  conf.MarkSeen,
		"processed": conf.ProcessedFolder,
	}).Info("Answering unread mails")

	summary, err := r.Run(ctx)
	if err != nil {
		logger.WithField("error", err).Error("Run failed")
		return err
	}

	if summary.Failed > 0 {
		logger.WithField("failed", summary.Failed).Warn("Some replies could not be sent")
	}
	return nil
}

func spamClassifier(ctx context.Context, conf *config.Config, l *logrus.Logger) (domain.SpamClassifier, error) {
	if len(conf.SpamassassinHost) > 0 {
		return spamassassin.NewSpamassassin(ctx, conf.SpamassassinHost, l)
	}

	if len(conf.RspamdController) > 0 {
		return rspamd.NewRspamd(conf.RspamdController, conf.RspamdPassword, l)
	}

	return nil, nil
}

func check(ctx context.Context, o *options) error {
	conf, loggers, logger, err := setup(o)
	if err != nil {
		return err
	}

	gw := mailgateway.NewGateway(conf.Mail, loggers)
	defer gw.Close()

	emails, err := gw.Unread(ctx)
	if err != nil {
		logger.WithField("error", err).Error("Mailbox check failed")
		return err
	}
	logger.WithFields(logrus.Fields{"server": conf.Mail.ImapAddress(), "unread": len(emails)}).Info("Mailbox reachable")

	engine := replyengine.NewEngine(conf.LLM, loggers.Logger(log.LOG_REPLY))
	err = engine.Ping(ctx)
	if err != nil {
		logger.WithField("error", err).Error("Completion API check failed")
		return err
	}
	logger.WithField("model", conf.LLM.Model).Info("Completion API reachable")

	if !o.sendTest {
		return nil
	}

	to := conf.Mail.Sender()
	err = gw.Send(ctx, &domain.Outgoing{
		To:      to,
		Subject: "go-imap-replier test mail",
		Body:    fmt.Sprintf("Test mail sent at %s.", time.Now().Format(time.RFC1123Z)),
	})
	if err != nil {
		logger.WithField("error", err).Error("Sending test mail failed")
		return err
	}
	logger.WithField("to", to).Info("Sent test mail")

	return nil
}
