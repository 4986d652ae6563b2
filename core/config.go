package core

import (
	"encoding/base64"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Conf holds the app configuration, loaded once at process start via LoadConf.
var Conf Config

type Config struct {
	Debug    bool
	TestMode bool
	AppName  string
	Env      string // DEV (local; default), TEST, QA, PROD
	Build    string

	// SecretKey authenticates bearer tokens; base64-encoded in the environment.
	SecretKey []byte

	// Password is the shared class password, compared in constant time.
	// PasswordHash (bcrypt) takes precedence when set.
	Password     string
	PasswordHash []byte

	// CorrectionsPath is the root directory of the correction blob store.
	CorrectionsPath string

	DefaultFromEmail mail.Address
	TeacherEmail     string
	SendgridApiKey   string
	RollbarToken     string

	Server struct {
		Addr            string
		ShutdownTimeout time.Duration
	}

	Database struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}
}

func (c *Config) DatabaseAddress() string {
	return c.Database.Host + ":" + c.Database.Port
}

// LoadConf reads the configuration from the environment (and an optional
// config/.env.<env> file) into Conf.
func LoadConf() error {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Zoezi")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", base64.StdEncoding.EncodeToString([]byte("!zoezi-dev-secret-do-not-use!")))
	v.SetDefault("appPasswd", "zoezi")
	v.SetDefault("appPasswdHash", "")
	v.SetDefault("correctionsPath", filepath.Join(os.TempDir(), "zoezi-corrections"))
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("teacherEmail", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.name", "zoezi")
	v.SetDefault("database.user", "zoezi")
	v.SetDefault("database.password", "zoezi")
	v.SetDefault("database.adminUser", "")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.disableTLS", true)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	secret, err := base64.StdEncoding.DecodeString(v.GetString("secretKey"))
	if err != nil {
		return errors.Wrap(err, "decoding secretKey")
	}

	Conf = Config{
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		Env:             env,
		Build:           v.GetString("build"),
		SecretKey:       secret,
		Password:        v.GetString("appPasswd"),
		PasswordHash:    []byte(v.GetString("appPasswdHash")),
		CorrectionsPath: v.GetString("correctionsPath"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("appName"),
			Address: v.GetString("defaultFromEmail"),
		},
		TeacherEmail:   v.GetString("teacherEmail"),
		SendgridApiKey: v.GetString("sendgridApiKey"),
		RollbarToken:   v.GetString("rollbarToken"),
	}
	Conf.Server.Addr = v.GetString("server.addr")
	Conf.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	Conf.Database.Engine = v.GetString("database.engine")
	Conf.Database.Name = v.GetString("database.name")
	Conf.Database.User = v.GetString("database.user")
	Conf.Database.Password = v.GetString("database.password")
	Conf.Database.AdminUser = v.GetString("database.adminUser")
	Conf.Database.AdminPassword = v.GetString("database.adminPassword")
	Conf.Database.Host = v.GetString("database.host")
	Conf.Database.Port = v.GetString("database.port")
	Conf.Database.DisableTLS = v.GetBool("database.disableTLS")
	return nil
}
