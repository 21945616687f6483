package config

type config struct {
	Server   server
	Mysql    mysql
	Redis    redis
	RabbitMq rabbitMq
}

type server struct {
	Addr string
}

type mysql struct {
	Addr     string
	Database string
	Username string
	Password string
	Charset  string
}

type redis struct {
	Addr     string
	Password string
}

type rabbitMq struct {
	Addr     string
	Username string
	Password string
}
