package main

import (
	"flag"

	"frisbee/config"
	"frisbee/internal"
	"frisbee/services"
)

func main() {

	logger := internal.NewLogger("internal", false, nil)

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	logger.Info("using config file: " + *configPath)
	conf, err := config.GetConfig(*configPath)
	if err != nil {
		logger.Error("boot", err)
		return
	}
	if conf.Log.File != "" {
		logger = logger.WithFile(conf.Log.File, conf.Log.MaxSizeMb)
	}

	var mongo services.Database
	if conf.Mongo.Enabled {
		mongo, err = internal.NewMongoClient(conf)
		if err != nil {
			logger.Error("mongo client", err)
			return
		}
		logger.Info("mongo client initialized")
	}

	encryptor := internal.NewEncryptor(conf.Merchant.EncryptionKey)
	secret, err := encryptor.DecryptSecret(conf.Merchant.SecretKey)
	if err != nil {
		logger.Error("decrypt merchant secret", err)
		return
	}

	var sessions services.SessionStores
	if conf.Redis.Enabled {
		sessions, err = internal.NewRedisSessions(conf)
		if err != nil {
			logger.Error("redis client", err)
			return
		}
		logger.Info("redis session store initialized")
	} else {
		sessions = internal.NewMemorySessions()
	}

	gateway := internal.NewGateway(secret)
	gateway.SetLogger(internal.NewLogger("gateway", conf.IsDebug, mongo))

	checkout := internal.NewCheckout(conf)
	checkout.SetLogger(internal.NewLogger("checkout", conf.IsDebug, mongo))
	checkout.SetDatabase(mongo)
	checkout.SetGateway(gateway)

	callbacks := internal.NewCallbacks(conf, secret)
	callbacks.SetLogger(internal.NewLogger("callback", conf.IsDebug, mongo))
	callbacks.SetDatabase(mongo)

	server := internal.NewServer(conf)
	server.SetLogger(internal.NewLogger("server", conf.IsDebug, mongo))
	server.SetSessions(sessions)
	server.SetCheckoutService(checkout)
	server.SetCallbackService(callbacks)

	err = server.Start()
	if err != nil {
		logger.Error("server start", err)
		return
	}

}
