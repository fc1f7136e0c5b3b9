package service

import (
	"context"
	"sync"
)

// Service 애플리케이션에서 생명주기를 관리받는 서비스입니다.
//
// Start 호출 전에 serviceStopWG.Add(1)을 해야 하며, 서비스는 종료가 끝나면 Done을 호출합니다.
// Start가 에러를 반환하는 경우에도 Done은 호출됩니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
