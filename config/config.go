// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultSystemPrompt = `You are a professional customer service representative handling customer emails.
Follow these principles:
1. Stay professional, friendly and empathetic
2. Keep answers concise and clear
3. If information is missing, politely ask for more details
4. If the email is a complaint, apologize and actively work towards a solution
5. Write naturally and avoid mechanical, templated language`

type MailConfig struct {
	ImapServer string `toml:"imap_server" env:"IMAP_SERVER"`
	ImapPort   int    `toml:"imap_port" env:"IMAP_PORT"`
	SmtpServer string `toml:"smtp_server" env:"SMTP_SERVER"`
	SmtpPort   int    `toml:"smtp_port" env:"SMTP_PORT"`
	Username   string `toml:"username" env:"EMAIL_USERNAME"`
	Password   string `toml:"password" env:"EMAIL_PASSWORD"`
	UseSSL     bool   `toml:"use_ssl" env:"EMAIL_USE_SSL"`
	From       string `toml:"from" env:"EMAIL_FROM"`
	Folder     string `toml:"folder" env:"IMAP_FOLDER"`
	Compress   bool   `toml:"compress" env:"IMAP_COMPRESS"`
}

func (m *MailConfig) ImapAddress() string {
	return fmt.Sprintf("%s:%d", m.ImapServer, m.ImapPort)
}

// Sender is the address replies are sent from, the account name unless set explicitly.
func (m *MailConfig) Sender() string {
	if len(strings.TrimSpace(m.From)) > 0 {
		return m.From
	}
	return m.Username
}

type LLMConfig struct {
	ApiKey       string  `toml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL      string  `toml:"base_url" env:"OPENAI_BASE_URL"`
	Model        string  `toml:"model" env:"OPENAI_MODEL"`
	Temperature  float32 `toml:"temperature" env:"OPENAI_TEMPERATURE"`
	MaxTokens    int     `toml:"max_tokens" env:"OPENAI_MAX_TOKENS"`
	SystemPrompt string  `toml:"system_prompt" env:"OPENAI_SYSTEM_PROMPT"`
}

type Config struct {
	Mail MailConfig `toml:"mail"`
	LLM  LLMConfig  `toml:"llm"`

	DryRun          bool   `toml:"dry_run" env:"DRY_RUN"`
	MarkSeen        bool   `toml:"mark_seen" env:"MARK_SEEN"`
	ProcessedFolder string `toml:"processed_folder" env:"PROCESSED_FOLDER"`

	Database string `toml:"database" env:"DATABASE"`

	SpamassassinHost string `toml:"spamassassin_host" env:"SPAMASSASSIN_HOST"`

	RspamdController string `toml:"rspamd_controller" env:"RSPAMD_CONTROLLER"`
	RspamdPassword   string `toml:"rspamd_password" env:"RSPAMD_PASSWORD"`

	Loglevel string `toml:"loglevel" env:"LOG_LEVEL"`
}

func defaultConfig() *Config {
	return &Config{
		Mail: MailConfig{
			ImapPort: 993,
			SmtpPort: 465,
			UseSSL:   true,
			Folder:   "INBOX",
		},
		LLM: LLMConfig{
			Model:        "gpt-3.5-turbo",
			Temperature:  0.7,
			MaxTokens:    1000,
			SystemPrompt: DefaultSystemPrompt,
		},
		MarkSeen: true,
		Loglevel: "info",
	}
}

// ReadConfig loads the configuration from an optional TOML file, then applies variables
// from an optional dotenv file and finally the process environment.
func ReadConfig(filename, dotenvFile string) (*Config, error) {
	environment := map[string]string{}
	if len(dotenvFile) > 0 {
		vars, err := godotenv.Read(dotenvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read env file: %w", err)
		}
		for k, v := range vars {
			environment[k] = v
		}
	}

	for k, v := range env.ToMap(os.Environ()) {
		environment[k] = v
	}

	return readConfig(filename, environment)
}

func readConfig(filename string, environment map[string]string) (*Config, error) {
	config := defaultConfig()

	if len(filename) > 0 {
		_, err := toml.DecodeFile(filename, config)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	err := env.ParseWithOptions(config, env.Options{Environment: environment})
	if err != nil {
		return nil, fmt.Errorf("could not read environment: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Mail.ImapServer, "IMAP_SERVER must not be empty, set to the hostname of the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Mail.SmtpServer, "SMTP_SERVER must not be empty, set to the hostname of the smtp server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Mail.Username, "EMAIL_USERNAME must not be empty, set to the mail account"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Mail.Password, "EMAIL_PASSWORD must not be empty, set to the password of the mail account"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Mail.Folder, "IMAP_FOLDER must not be empty"); err != nil {
		return err
	}

	if err := validatePort(c.Mail.ImapPort, "IMAP_PORT"); err != nil {
		return err
	}

	if err := validatePort(c.Mail.SmtpPort, "SMTP_PORT"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.LLM.ApiKey, "OPENAI_API_KEY must not be empty"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.LLM.Model, "OPENAI_MODEL must not be empty"); err != nil {
		return err
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("OPENAI_TEMPERATURE must be between 0 and 2, got %v", c.LLM.Temperature)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("OPENAI_MAX_TOKENS must be positive, got %d", c.LLM.MaxTokens)
	}

	spamassassinSet := len(strings.TrimSpace(c.SpamassassinHost)) > 0
	rspamdSet := len(strings.TrimSpace(c.RspamdController)) > 0
	if rspamdSet && spamassassinSet {
		return fmt.Errorf("SpamassassinHost and RspamdController cannot be set at the same time")
	}

	if rspamdSet {
		if err := validateNonEmptyStringField(c.RspamdPassword, "RspamdPassword must be set if RspamdController is set"); err != nil {
			return err
		}
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}

func validatePort(port int, name string) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}

	return nil
}
