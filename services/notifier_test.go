package services

import (
	"strings"
	"testing"

	"natura-salon-backend/config"
	"natura-salon-backend/models"
)

func TestConfirmationEmail(t *testing.T) {
	res := models.Reservation{
		ID:            7,
		Name:          "Taro",
		PreferredDate: "2030-01-01",
		PreferredTime: "10:00",
		Menu:          "color",
	}

	subject, body := confirmationEmail("natura-salon", res, menuNames(config.DefaultMenu()))

	if !strings.Contains(subject, "2030-01-01 10:00") {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"Hello Taro", "Hair color", "Reservation number: 7"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestMenuLabelFallsBackToKey(t *testing.T) {
	if got := menuLabel(map[string]string{}, "Head spa"); got != "Head spa" {
		t.Fatalf("got %q", got)
	}
}
