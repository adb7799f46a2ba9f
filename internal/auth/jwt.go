package auth

import (
	"context"
	"errors"
	"time"

	"airhockey/internal/config"
	"airhockey/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
)

func jwtKey() []byte {
	return []byte(config.Config.JWTSecret)
}

type Claims struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the user and records it in MongoDB so a
// re-login can be checked against the token store.
func GenerateToken(id int, username string) (string, error) {
	claims := &Claims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey())
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := db.MongoDatabase.Collection("user_tokens")
	doc := bson.M{
		"id":        id,
		"username":  username,
		"token":     token,
		"active_at": time.Now(),
	}

	if _, err = collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}

	return token, nil
}

// ValidateToken verifies the signature, then cross-checks the token store and
// refreshes its active_at stamp.
func ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := db.MongoDatabase.Collection("user_tokens")

	filter := bson.M{
		"id":    claims.ID,
		"token": tokenStr,
	}

	var result struct {
		Username string `bson:"username"`
	}

	if err := collection.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, errors.New("token not found in database")
	}

	if result.Username != claims.Username {
		return nil, errors.New("token data mismatch")
	}

	update := bson.M{
		"$set": bson.M{
			"active_at": time.Now(),
		},
	}
	_, _ = collection.UpdateOne(ctx, filter, update)

	return claims, nil
}
