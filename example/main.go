package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	podpoint "github.com/mattrayner/podpointclient"
)

type Config struct {
	Email    string
	Password string
	DebugLog bool
}

func (c *Config) ReadConfig() {
	c.Email = c.getEnv("POD_POINT_EMAIL", "")
	c.Password = c.getEnv("POD_POINT_PASSWORD", "")
	c.DebugLog = (c.getEnv("DEBUG_LOG", "0") == "1")
	if c.Email == "" || c.Password == "" {
		log.Fatalln("POD_POINT_EMAIL and POD_POINT_PASSWORD must be set")
	}
}

func (c *Config) getEnv(key, defaultValue string) string {
	res := os.Getenv(key)
	if res == "" {
		return defaultValue
	}
	return res
}

func main() {
	config := &Config{}
	config.ReadConfig()

	logger := zerolog.Nop()
	if config.DebugLog {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	client := podpoint.NewPodPointClient(config.Email, config.Password,
		podpoint.WithLogger(logger),
		podpoint.WithTimeout(30*time.Second),
	)

	ctx := context.Background()

	verified, err := client.CredentialsVerified(ctx)
	if err != nil {
		log.Fatalln(err)
	}
	if !verified {
		log.Fatalln("credentials verified but no pods on account")
	}

	pods, err := client.AllPods(ctx, nil)
	if err != nil {
		log.Fatalln(err)
	}
	for _, pod := range pods {
		log.Printf("pod %d (%s) unit %d model %s\n", pod.ID, pod.PPID, pod.UnitID, pod.Model.Name)

		firmwares, err := client.Firmwares(ctx, pod)
		if err != nil {
			log.Println(err)
			continue
		}
		for _, firmware := range firmwares {
			log.Printf("  firmware %s update available: %t\n", firmware.FirmwareVersionName(), firmware.UpdateAvailable())
		}

		override, err := client.ChargeOverride(ctx, pod)
		if err != nil {
			log.Println(err)
			continue
		}
		mode := override.Mode(time.Now().UTC())
		log.Printf("  charge mode: %s\n", mode)
	}

	charges, err := client.Charges(ctx, 5, 1)
	if err != nil {
		log.Fatalln(err)
	}
	for _, charge := range charges {
		log.Printf("charge %d: %.2f kWh (%s)\n", charge.ID, charge.KWhUsed, charge.ChargingDuration.String())
	}
}
