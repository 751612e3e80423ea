package miningmanager

import "github.com/gcoinproject/gcoind/infrastructure/logger"

var log = logger.RegisterSubSystem("MINM")
