package service

import (
	"sync"
	"time"
)

// Monitor 监控服务，统计下单与通知链路的错误和吞吐
type Monitor struct {
	mu sync.RWMutex

	// 错误统计
	DBErrors     int64
	RedisErrors  int64
	MQErrors     int64
	NotifyErrors int64

	// 业务统计
	CheckoutRequests int64
	CheckoutSuccess  int64
	CheckoutFailed   int64
	NotifySaved      int64
	EmailQueued      int64
	EmailDelivered   int64
	EmailFailed      int64

	// 时间统计
	LastCheckoutTime time.Time
	LastNotifyError  time.Time
	LastEmailTime    time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

// RecordCheckoutRequest 记录下单请求
func (m *Monitor) RecordCheckoutRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutRequests++
	m.LastCheckoutTime = time.Now()
}

// RecordCheckoutSuccess 记录下单成功
func (m *Monitor) RecordCheckoutSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutSuccess++
}

// RecordCheckoutFailed 记录下单失败
func (m *Monitor) RecordCheckoutFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutFailed++
}

// RecordDBError 记录数据库错误
func (m *Monitor) RecordDBError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors++
}

// RecordRedisError 记录Redis错误
func (m *Monitor) RecordRedisError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RedisErrors++
}

// RecordMQError 记录MQ错误
func (m *Monitor) RecordMQError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MQErrors++
}

// RecordNotifySaved 记录通知落库成功
func (m *Monitor) RecordNotifySaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifySaved++
}

// RecordNotifyError 记录通知链路错误
func (m *Monitor) RecordNotifyError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyErrors++
	m.LastNotifyError = time.Now()
}

// RecordEmailQueued 记录邮件任务入队
func (m *Monitor) RecordEmailQueued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailQueued++
	m.LastEmailTime = time.Now()
}

// RecordEmailDelivered 记录邮件投递成功
func (m *Monitor) RecordEmailDelivered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailDelivered++
	m.LastEmailTime = time.Now()
}

// RecordEmailFailed 记录邮件投递失败
func (m *Monitor) RecordEmailFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailFailed++
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.CheckoutRequests > 0 {
		successRate = float64(m.CheckoutSuccess) / float64(m.CheckoutRequests) * 100
	}

	return map[string]interface{}{
		"errors": map[string]interface{}{
			"db":     m.DBErrors,
			"redis":  m.RedisErrors,
			"mq":     m.MQErrors,
			"notify": m.NotifyErrors,
		},
		"checkout": map[string]interface{}{
			"requests":     m.CheckoutRequests,
			"success":      m.CheckoutSuccess,
			"failed":       m.CheckoutFailed,
			"success_rate": successRate,
		},
		"notify": map[string]interface{}{
			"saved":           m.NotifySaved,
			"email_queued":    m.EmailQueued,
			"email_delivered": m.EmailDelivered,
			"email_failed":    m.EmailFailed,
		},
		"last_events": map[string]interface{}{
			"last_checkout":     m.LastCheckoutTime,
			"last_notify_error": m.LastNotifyError,
			"last_email":        m.LastEmailTime,
		},
	}
}

// Reset 重置统计（用于测试或定期清理）
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors = 0
	m.RedisErrors = 0
	m.MQErrors = 0
	m.NotifyErrors = 0
	m.CheckoutRequests = 0
	m.CheckoutSuccess = 0
	m.CheckoutFailed = 0
	m.NotifySaved = 0
	m.EmailQueued = 0
	m.EmailDelivered = 0
	m.EmailFailed = 0
}
