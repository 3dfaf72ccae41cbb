package actors

import "sync"

var terminateChan = make(chan struct{})
var waitGroup = &sync.WaitGroup{}

func GetTerminateChan() chan struct{} {
	return terminateChan
}

// GetWaitGroup is incremented by background workers so that main can wait for them after closing the terminate chan.
func GetWaitGroup() *sync.WaitGroup {
	return waitGroup
}
