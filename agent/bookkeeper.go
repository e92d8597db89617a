package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/xanderman/quickcash"
	"github.com/xanderman/quickcash/renderer"
)

const model = "gemini-2.5-pro"

// newFacilitator fronts the conversation and delegates to the experts.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his personal finances: what he owns, what he
			spends and on which categories. Check the ledger first to know his accounts before
			answering. Devise a plan of questions to ask each expert and come up with the best
			response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper creates the expert in charge of reading the user's
// cashbox. load is called on every function call so the expert always
// sees the current state of the ledger file.
func NewBookkeeper(load func() (*quickcash.Cashbox, error)) *Expert {
	lib := []Function{
		accountsFunc(load),
		registerFunc(load),
		categoriesFunc(load),
	}
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's cashbox:
		the bank accounts, their balances, the transactions recorded against them and the
		spending categories. Ask the Bookkeeper whenever you need figures from the ledger.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's cashbox.
				You know how to use the Tools to extract relevant information about the user's
				accounts and spending. You are part of a team of experts, yours is everything
				recorded in the ledger. They might ask you questions in approximative language,
				figure out what they meant.

				Use the available tools to get
				  - the list of accounts and their balances
				  - the transaction register of one account
				  - the list of spending categories
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func adapts a declaration and a callback into a Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

func accountsFunc(load func() (*quickcash.Cashbox, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Accounts",
			Description: "Accounts lists every bank account in the cashbox with its type, institution and current balance.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all accounts and balances.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			cb, err := load()
			if err != nil {
				return errResponse(id, "Accounts", err)
			}
			return okResponse(id, "Accounts", renderer.Accounts(cb))
		},
	}
}

func registerFunc(load func() (*quickcash.Cashbox, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Register",
			Description: "Register lists all transactions of one account in date order, with payee, description, category and amount.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"account": {
						Type:        genai.TypeString,
						Description: "The exact name of the account, as reported by Accounts.",
					},
				},
				Required: []string{"account"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted register of the account's transactions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["account"].(string)
			if !ok {
				return errResponse(id, "Register", fmt.Errorf("argument 'account' is not a string but %T", args["account"]))
			}
			cb, err := load()
			if err != nil {
				return errResponse(id, "Register", err)
			}
			a := cb.Account(name)
			if a == nil {
				return errResponse(id, "Register", fmt.Errorf("no account named %q", name))
			}
			return okResponse(id, "Register", renderer.Register(a))
		},
	}
}

func categoriesFunc(load func() (*quickcash.Cashbox, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Categories",
			Description: "Categories lists every spending category with its description.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all categories.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			cb, err := load()
			if err != nil {
				return errResponse(id, "Categories", err)
			}
			return okResponse(id, "Categories", renderer.Categories(cb))
		},
	}
}
