package actors

import (
	"os"

	"github.com/spf13/viper"

	"etch/engine/library"
)

// InitConfig sets up our Viper config object
func InitConfig(config *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
	config.SetDefault("rootDir", homeDir+"/etch/")
	config.SetConfigType("yaml")
	config.SetConfigFile(config.GetString("rootDir") + "config.yaml")
	err = config.ReadInConfig()
	if err != nil {
		library.LogCLI(err.Error(), 4)
	}
	config.SetDefault("flatFileDir", "data/")
	config.SetDefault("logLevel", 4)
	// supplied: callers choose token ids and may issue many instances; sequential: ids are assigned 0, 1, 2...
	config.SetDefault("variant", "supplied")
	config.SetDefault("registryName", "etch")
	config.SetDefault("auditFile", true)
	config.SetDefault("doNotPublish", true)
	config.SetDefault("relays", []string{})
	// relay publishes give up after 30s, anything blocked for longer than this is reported
	config.SetDefault("watchdogTimeout", "60s")
	library.SetLogLevel(config.GetInt("logLevel"))
	library.ConfigureWatchdog(config.GetDuration("watchdogTimeout"))
	// Create our working directory and config file if not exist
	initRootDir(config)
	if err = touch(config.GetString("rootDir") + "config.yaml"); err != nil {
		library.LogCLI(err.Error(), 0)
	}
	err = config.WriteConfig()
	if err != nil {
		library.LogCLI(err.Error(), 0)
	}
}

func initRootDir(conf *viper.Viper) {
	_, err := os.Stat(conf.GetString("rootDir"))
	if os.IsNotExist(err) {
		err = os.MkdirAll(conf.GetString("rootDir"), 0755)
		if err != nil {
			library.LogCLI(err, 0)
		}
	}
}

var conf *viper.Viper

func MakeOrGetConfig() *viper.Viper {
	if conf == nil {
		conf = viper.New()
	}
	return conf
}

func SetConfig(config *viper.Viper) {
	conf = config
}
