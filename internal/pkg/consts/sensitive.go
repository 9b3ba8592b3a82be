package consts

// SensitiveKeys are masked before request headers are logged.
var SensitiveKeys = []string{
	"Authorization",
	"authorization",
	"Cookie",
	"X-Api-Key",
	"password",
	"token",
}
