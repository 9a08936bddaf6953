package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/polysat"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "example/scene/scene.yaml", "scene description")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	logConfig := zap.NewProductionConfig()
	if *verbose {
		logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := logConfig.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config, err := polysat.LoadConfigFile(*configPath)
	if err != nil {
		logger.Fatal("load scene", zap.Error(err))
	}

	world, err := config.Build(logger)
	if err != nil {
		logger.Fatal("build scene", zap.Error(err))
	}

	world.Events.Subscribe(polysat.COLLISION_ENTER, func(event polysat.Event) {
		e := event.(polysat.CollisionEnterEvent)
		logger.Info("collision enter",
			zap.String("a", e.BodyA.Name),
			zap.String("b", e.BodyB.Name),
		)
	})

	contacts := world.Detect()
	for _, c := range contacts {
		logger.Info("contact",
			zap.String("a", c.BodyA.Name),
			zap.String("b", c.BodyB.Name),
			zap.Float64s("mtv", c.Collision.MTV[:]),
			zap.Float64("depth", c.Collision.MTVLength),
		)
	}

	// Push each first body out along its MTV and check the pair again
	for _, c := range contacts {
		pose := c.BodyA.Pose()
		moved := pose.Position.Add(c.Collision.MTV.Mul(c.Collision.MTVLength))
		c.BodyA.SetPose(moved, pose.AngleX, pose.AngleY, pose.AngleZ)

		after := polysat.Query(c.BodyA, c.BodyB)
		logger.Info("resolved",
			zap.String("a", c.BodyA.Name),
			zap.String("b", c.BodyB.Name),
			zap.Bool("collide", after.Collide),
			zap.Float64("depth", after.MTVLength),
		)
	}
}
