package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/sneha-1019/PawfectHomes/internal/config"
	"github.com/sneha-1019/PawfectHomes/internal/log"
	"github.com/sneha-1019/PawfectHomes/internal/mail"
	"github.com/sneha-1019/PawfectHomes/internal/queue"
)

// The notify worker drains mail events off the broker and delivers them
// through SendGrid. Delivery failures nack with requeue.
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cons, err := queue.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, "email.*")
	if err != nil {
		log.Errorf("rabbit consumer init failed: %v", err)
		os.Exit(1)
	}
	defer cons.Close()

	sender := mail.NewSender(cfg.SendgridKey, cfg.FromEmail, cfg.FromName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("notify worker up. exchange=%s queue=%s workers=%d",
		cfg.RabbitExchange, cfg.RabbitQueue, cfg.RabbitWorkers)

	if err := cons.Consume(ctx, cfg.RabbitWorkers, func(key string, body []byte) error {
		return dispatch(ctx, sender, key, body)
	}); err != nil {
		log.Errorf("consumer stopped: %v", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, sender *mail.Sender, key string, body []byte) error {
	switch key {
	case queue.KeyEmailOTP:
		var ev queue.EmailOTP
		if err := json.Unmarshal(body, &ev); err != nil {
			log.Errorf("bad %s payload: %v", key, err)
			return nil // unparseable, do not requeue
		}
		return sender.Send(ctx, ev.To, mail.SubjectOTP, mail.OTPBody(ev.Name, ev.OTP))
	case queue.KeyEmailWelcome:
		var ev queue.EmailWelcome
		if err := json.Unmarshal(body, &ev); err != nil {
			log.Errorf("bad %s payload: %v", key, err)
			return nil
		}
		return sender.Send(ctx, ev.To, mail.SubjectWelcome, mail.WelcomeBody(ev.Name))
	case queue.KeyEmailAdoption:
		var ev queue.EmailAdoption
		if err := json.Unmarshal(body, &ev); err != nil {
			log.Errorf("bad %s payload: %v", key, err)
			return nil
		}
		return sender.Send(ctx, ev.To, mail.SubjectAdoption(ev.PetName), mail.AdoptionBody(ev.PetName, ev.Status))
	default:
		log.Errorf("unknown routing key %q, dropping", key)
		return nil
	}
}
