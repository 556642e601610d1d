package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/smtp"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/DineshVarikuppala/Dukanam/internal/config"
	"github.com/DineshVarikuppala/Dukanam/internal/infra/logger"
	"github.com/DineshVarikuppala/Dukanam/internal/infra/mq"
	"github.com/DineshVarikuppala/Dukanam/internal/service"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init()

	mqConn := mq.Init(&cfg.RabbitMQ)

	ch, err := mqConn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(service.EmailQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}

	// 手动确认模式（auto-ack=false），投递失败的邮件重新入队
	msgs, err := ch.Consume(service.EmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}

	log.Println("notify worker started, waiting for messages...")

	for d := range msgs {
		var m service.EmailMessage
		if err := json.Unmarshal(d.Body, &m); err != nil {
			log.Printf("invalid message: %v", err)
			// 消息格式错误，拒绝并丢弃
			_ = d.Nack(false, false)
			continue
		}
		handleMessage(&cfg.SMTP, &m, d)
	}
}

func handleMessage(cfg *config.SMTPConfig, m *service.EmailMessage, d amqp.Delivery) {
	if err := sendEmail(cfg, m); err != nil {
		log.Printf("failed to send email to %s: %v", m.To, err)
		service.GetMonitor().RecordEmailFailed()
		// 投递失败，重新入队等下一轮
		_ = d.Nack(false, true)
		return
	}

	service.GetMonitor().RecordEmailDelivered()
	if err := d.Ack(false); err != nil {
		log.Printf("failed to ack message: %v", err)
	}
}

// sendEmail 通过 SMTP 发送邮件；未配置 Host 时只打日志，方便本地联调
func sendEmail(cfg *config.SMTPConfig, m *service.EmailMessage) error {
	if cfg.Host == "" {
		log.Printf("[dry-run] email to=%s subject=%q", m.To, m.Subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		cfg.From, m.To, m.Subject, m.Body)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var a smtp.Auth
	if cfg.Username != "" {
		a = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return smtp.SendMail(addr, a, cfg.From, []string{m.To}, []byte(msg))
}
