package api

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// APIConfig represent the configuration for the entire dashboard application
type APIConfig struct {
	Server    *ServerConfig    `yaml:"server,omitempty"`
	Events    *EventsConfig    `yaml:"events,omitempty"`
	Sessions  *SessionsConfig  `yaml:"sessions,omitempty"`
	APIServer *APIServerConfig `yaml:"apiServer,omitempty"`
	Queue     *QueueConfig     `yaml:"queue,omitempty"`
	Logging   *LoggingConfig   `yaml:"logging,omitempty"`
}

func (c *APIConfig) SetDefaults() {
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	c.Server.SetDefaults()

	if c.Events == nil {
		c.Events = &EventsConfig{}
	}
	c.Events.SetDefaults()

	if c.Sessions == nil {
		c.Sessions = &SessionsConfig{}
	}
	c.Sessions.SetDefaults()

	if c.APIServer == nil {
		c.APIServer = &APIServerConfig{}
	}
	c.APIServer.SetDefaults()

	if c.Queue == nil {
		c.Queue = &QueueConfig{}
	}
	c.Queue.SetDefaults()

	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.SetDefaults()
}

func (c *APIConfig) Validate() (err error) {
	err = c.Server.Validate()
	if err != nil {
		return
	}

	err = c.Events.Validate()
	if err != nil {
		return
	}

	err = c.Sessions.Validate()
	if err != nil {
		return
	}

	err = c.Queue.Validate()
	if err != nil {
		return
	}

	err = c.Logging.Validate()
	if err != nil {
		return
	}

	return nil
}

// ServerConfig represents configuration for the ci server the dashboard talks to
type ServerConfig struct {
	BaseURL        string        `yaml:"baseURL"`
	APIPath        string        `yaml:"apiPath"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	MaxRetries     int           `yaml:"maxRetries"`
}

func (c *ServerConfig) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:6084"
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.APIPath == "" {
		c.APIPath = "/ding/"
	}
	if !strings.HasPrefix(c.APIPath, "/") {
		c.APIPath = "/" + c.APIPath
	}
	if !strings.HasSuffix(c.APIPath, "/") {
		c.APIPath += "/"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
}

func (c *ServerConfig) Validate() (err error) {
	if c.BaseURL == "" {
		return errors.New("Configuration item 'server.baseURL' is required; please set it to the base url of the ci server")
	}
	if c.APIPath == "" {
		return errors.New("Configuration item 'server.apiPath' is required; please set it to the path of the json api on the ci server")
	}
	return nil
}

// APIURL returns the url for calling method on the ci server's json api
func (c *ServerConfig) APIURL(method string) string {
	return c.BaseURL + c.APIPath + method
}

// EventsConfig represents configuration for the server-sent events stream
type EventsConfig struct {
	Path              string        `yaml:"path"`
	ReconnectDelay    time.Duration `yaml:"reconnectDelay"`
	ConnectAttempts   int           `yaml:"connectAttempts"`
	SessionBufferSize int           `yaml:"sessionBufferSize"`
}

func (c *EventsConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "/events"
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = 3 * time.Second
	}
	if c.ConnectAttempts <= 0 {
		c.ConnectAttempts = 3
	}
	if c.SessionBufferSize <= 0 {
		c.SessionBufferSize = 48
	}
}

func (c *EventsConfig) Validate() (err error) {
	if c.Path == "" {
		return errors.New("Configuration item 'events.path' is required; please set it to the path of the event stream on the ci server")
	}
	return nil
}

// SessionsConfig represents configuration for dashboard client sessions
type SessionsConfig struct {
	IdleTimeout   time.Duration `yaml:"idleTimeout"`
	SweepInterval time.Duration `yaml:"sweepInterval"`
	MaxSessions   int           `yaml:"maxSessions"`
}

func (c *SessionsConfig) SetDefaults() {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 30 * time.Minute
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 100
	}
}

func (c *SessionsConfig) Validate() (err error) {
	if c.SweepInterval > c.IdleTimeout {
		return errors.New("Configuration item 'sessions.sweepInterval' should not exceed 'sessions.idleTimeout'")
	}
	return nil
}

// APIServerConfig represents configuration for the dashboard's own http server
type APIServerConfig struct {
	PingInterval time.Duration `yaml:"pingInterval"`
}

func (c *APIServerConfig) SetDefaults() {
	if c.PingInterval <= 0 {
		c.PingInterval = 5 * time.Second
	}
}

// QueueConfig represents configuration for relaying events to nats; with consume set the dashboard
// reads events from nats instead of the ci server's event stream
type QueueConfig struct {
	Enable        bool     `yaml:"enable"`
	Consume       bool     `yaml:"consume"`
	Hosts         []string `yaml:"hosts"`
	SubjectPrefix string   `yaml:"subjectPrefix"`
	QueueGroup    string   `yaml:"queueGroup"`
}

func (c *QueueConfig) SetDefaults() {
	if len(c.Hosts) == 0 {
		c.Hosts = []string{"nats://localhost:4222"}
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = "ding.events"
	}
	if c.QueueGroup == "" {
		c.QueueGroup = "estafette-ci-dashboard"
	}
}

func (c *QueueConfig) Validate() (err error) {
	if !c.Enable {
		return nil
	}
	if len(c.Hosts) == 0 {
		return errors.New("Configuration item 'queue.hosts' is required; please set it to name of the queue hosts used by the dashboard")
	}
	if c.SubjectPrefix == "" {
		return errors.New("Configuration item 'queue.subjectPrefix' is required; please set it to the subject prefix for relayed events")
	}
	if c.Consume && c.QueueGroup == "" {
		return errors.New("Configuration item 'queue.queueGroup' is required when consuming events from the queue")
	}
	return nil
}

// Subject returns the nats subject for an event kind
func (c *QueueConfig) Subject(kind string) string {
	return c.SubjectPrefix + "." + kind
}

// WildcardSubject returns the nats subject matching events of all kinds
func (c *QueueConfig) WildcardSubject() string {
	return c.SubjectPrefix + ".*"
}

// LoggingConfig represents configuration for the log output
type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = zerolog.InfoLevel.String()
	}
}

func (c *LoggingConfig) Validate() (err error) {
	_, err = zerolog.ParseLevel(c.Level)
	if err != nil {
		return errors.New("Configuration item 'logging.level' is invalid; please set it to one of trace, debug, info, warn or error")
	}
	return nil
}

// ParsedLevel returns the configured level, falling back to info
func (c *LoggingConfig) ParsedLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
