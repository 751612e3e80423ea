package main

import (
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/gcoinproject/gcoind/util/panics"
)

var log = logger.RegisterSubSystem("GCTL")
var spawn = panics.GoroutineWrapperFunc(log)
