package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stash-connect/internal/config"
	"stash-connect/internal/crypto"
	"stash-connect/internal/domain"
	"stash-connect/internal/repository"
	"stash-connect/internal/service"
	"stash-connect/internal/stash"
)

// Uso:
//
//	cli_inbox                      modo interactivo
//	cli_inbox <type> <id> [limit]  imprime una página y sale
//	cli_inbox token <operator>     emite un token para la API local
func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	if len(os.Args) == 3 && os.Args[1] == "token" {
		jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
		tok, err := jwtSvc.Issue(os.Args[2])
		if err != nil {
			log.Fatalf("emitir token: %v", err)
		}
		fmt.Println(tok.AccessToken)
		return
	}

	api := stash.NewHTTPClient(cfg.StashBaseURL, cfg.StashClientKey, cfg.StashDeviceID, logger)
	var unwrapper *crypto.RSAUnwrapper
	if cfg.StashPrivateKeyFile != "" {
		if unwrapper, err = crypto.LoadRSAUnwrapper(cfg.StashPrivateKeyFile); err != nil {
			log.Fatalf("cargar clave privada: %v", err)
		}
	}

	remote := repository.NewRemoteDataAccess(api, unwrapper)
	keySource := service.NewCachedKeySource(remote, service.NewMemoryKeyCache(cfg.KeyCacheTTL), logger)
	resolver := service.NewKeyResolver(keySource)
	hydrator := service.NewHydrator(remote, logger)
	assembler := service.NewMessageAssembler(logger, resolver, crypto.AESCBC{}, hydrator, unwrapper)
	conversations := service.NewConversationBuilder(resolver, unwrapper, hydrator)
	messageSvc := service.NewMessageService(remote, assembler, conversations, nil, logger)

	if len(os.Args) >= 3 {
		target, limit, err := parseArgs(os.Args[1:])
		if err != nil {
			log.Fatal(err)
		}
		if err := printPage(ctx, messageSvc, target, limit, 0); err != nil {
			log.Fatal(err)
		}
		return
	}

	runInteractive(ctx, bufio.NewReader(os.Stdin), messageSvc)
}

func parseArgs(args []string) (domain.Addressing, int, error) {
	typ, err := domain.ParseTargetType(args[0])
	if err != nil {
		return domain.Addressing{}, 0, err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return domain.Addressing{}, 0, fmt.Errorf("id invalido %q", args[1])
	}
	limit := 0
	if len(args) > 2 {
		if limit, err = strconv.Atoi(args[2]); err != nil {
			return domain.Addressing{}, 0, fmt.Errorf("limite invalido %q", args[2])
		}
	}
	return domain.Addressing{Type: typ, ID: id}, limit, nil
}

func runInteractive(ctx context.Context, reader *bufio.Reader, messageSvc *service.MessageService) {
	for {
		fmt.Println("===== Bandeja =====")
		convs, err := messageSvc.Conversations(ctx, 20, 0)
		if err != nil {
			log.Fatalf("listar conversaciones: %v", err)
		}
		for i, c := range convs {
			fmt.Printf("[%d] %s (%d miembros, %d sin leer)\n", i+1, conversationLabel(c), len(c.Members), c.UnreadMessages)
		}
		fmt.Println("[C] Abrir canal por id")
		fmt.Println("[S] Salir")
		fmt.Print("Selecciona: ")

		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		var target domain.Addressing
		switch {
		case strings.EqualFold(choice, "S"):
			return
		case strings.EqualFold(choice, "C"):
			fmt.Print("Id del canal: ")
			line, _ := reader.ReadString('\n')
			id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
			if err != nil || id <= 0 {
				fmt.Println("Id invalido.")
				continue
			}
			target = domain.ChannelTarget(id)
		default:
			idx, err := strconv.Atoi(choice)
			if err != nil || idx < 1 || idx > len(convs) {
				fmt.Println("Seleccion invalida.")
				continue
			}
			target = convs[idx-1].Addressing()
		}

		if err := printPage(ctx, messageSvc, target, 0, 0); err != nil {
			fmt.Printf("Error leyendo %s: %v\n", target, err)
		}
	}
}

func printPage(ctx context.Context, messageSvc *service.MessageService, target domain.Addressing, limit, offset int) error {
	msgs, err := messageSvc.Sync(ctx, target, limit, offset)
	if err != nil {
		return err
	}
	fmt.Printf("---- %s ----\n", target)
	for _, m := range msgs {
		ts := time.Unix(m.Time, 0).Format("2006-01-02 15:04")
		fmt.Printf("%s %s: %s\n", ts, m.Author.DisplayName(), m.Plaintext)
		if m.Location != nil {
			if m.Location.Decoded {
				fmt.Printf("    ubicacion: %s, %s\n", m.Location.Latitude, m.Location.Longitude)
			} else {
				fmt.Println("    ubicacion cifrada (sin clave local)")
			}
		}
		for _, f := range m.Files {
			fmt.Printf("    adjunto: %s (%s)\n", f.Name, f.SizeString)
		}
	}
	return nil
}

func conversationLabel(c domain.Conversation) string {
	if c.Name != "" {
		return c.Name
	}
	names := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		names = append(names, m.DisplayName())
	}
	return strings.Join(names, ", ")
}
