package service

import (
	"fmt"
	"time"

	"github.com/mystarhq/notify-api/internal/domain"
)

const (
	logoURL                  = "https://answerme.co.il/mystar/logo.png"
	defaultEstimatedDelivery = "24-48 שעות"
	defaultOrderMessage      = "אין הודעה מיוחדת."
)

func fanOrderSubject(creatorName string, orderID string) string {
	return fmt.Sprintf("ההזמנה שלך מ-%s התקבלה! (#%s) - MyStar", creatorName, domain.ShortOrderID(orderID))
}

func creatorOrderSubject(fanName string, orderID string) string {
	return fmt.Sprintf("הזמנה חדשה התקבלה מ-%s! (#%s) - MyStar", fanName, domain.ShortOrderID(orderID))
}

// fanOrderBody renders the order-confirmation email sent to the fan.
// Values are interpolated without escaping; upstream order data is
// trusted storefront input (see render package for the boundary note).
func fanOrderBody(req domain.FanOrderConfirmationRequest, siteURL string, now time.Time) string {
	estimatedDelivery := req.EstimatedDelivery
	if estimatedDelivery == "" {
		estimatedDelivery = defaultEstimatedDelivery
	}

	dashboardURL := siteURL + "/dashboard/fan"

	return fmt.Sprintf(`<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e5e7eb; border-radius: 8px; text-align: right;">
  <div style="text-align: center; margin-bottom: 20px;">
    <img src="%s" alt="MyStar Logo" style="width: 120px; height: auto;" />
  </div>
  <h1 style="color: #0284c7; text-align: center;">תודה על הזמנתך, %s!</h1>
  <p style="margin-top: 20px;">ההזמנה שלך עבור סרטון ברכה מ-<strong>%s</strong> התקבלה והועברה ליוצר.</p>
  <p>היוצר יתחיל לעבוד על הבקשה שלך בקרוב!</p>
  <div style="background-color: #f0f9ff; border: 1px solid #bae6fd; border-radius: 8px; padding: 20px; margin: 20px 0;">
    <h3 style="color: #0284c7; margin-top: 0;">פרטי ההזמנה:</h3>
    <p><strong>מספר הזמנה:</strong> #%s</p>
    <p><strong>סוג בקשה:</strong> %s</p>
    <p><strong>יוצר:</strong> %s</p>
    <p><strong>זמן אספקה משוער:</strong> %s</p>
  </div>
  <p>כאשר הסרטון יהיה מוכן, נשלח לך הודעה נוספת ותוכל לצפות בו בלוח הבקרה שלך: <a href="%s" style="color: #0284c7;">לוח הבקרה</a>.</p>
  <div style="margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb; text-align: center; color: #6b7280; font-size: 14px;">
    <p>&copy; %d MyStar - מיי סטאר. כל הזכויות שמורות.</p>
  </div>
</div>`,
		logoURL,
		req.FanName,
		req.CreatorName,
		domain.ShortOrderID(req.OrderID),
		domain.OrderTypeLabel(req.OrderType),
		req.CreatorName,
		estimatedDelivery,
		dashboardURL,
		now.Year(),
	)
}

// creatorOrderBody renders the new-order notification sent to the
// creator, including the displayed commission split.
func creatorOrderBody(req domain.CreatorOrderNotificationRequest, siteURL string, now time.Time) string {
	orderMessage := req.OrderMessage
	if orderMessage == "" {
		orderMessage = defaultOrderMessage
	}

	formattedPrice := domain.FormatPrice(req.OrderPrice)
	creatorShare := domain.FormatPrice(domain.CreatorShare(req.OrderPrice))
	dashboardURL := siteURL + "/dashboard/creator/requests"

	return fmt.Sprintf(`<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e5e7eb; border-radius: 8px; text-align: right;">
  <div style="text-align: center; margin-bottom: 20px;">
    <img src="%s" alt="MyStar Logo" style="width: 120px; height: auto;" />
  </div>
  <h1 style="color: #0284c7; text-align: center;">הזמנה חדשה התקבלה!</h1>
  <p style="margin-top: 20px;">שלום %s,</p>
  <p>קיבלת בקשת וידאו חדשה מ-<strong>%s</strong>.</p>
  <div style="background-color: #f0f9ff; border: 1px solid #bae6fd; border-radius: 8px; padding: 20px; margin: 20px 0;">
    <h3 style="color: #0284c7; margin-top: 0;">פרטי ההזמנה:</h3>
    <p><strong>מספר הזמנה:</strong> #%s</p>
    <p><strong>סוג בקשה:</strong> %s</p>
    <p><strong>מחיר שתקבל (לאחר עמלה):</strong> ₪%s (מתוך ₪%s)</p>
    <p><strong>הודעה מהמעריץ:</strong></p>
    <div style="background-color: #ffffff; padding: 15px; border-radius: 5px; margin-top: 10px; white-space: pre-wrap;">%s</div>
  </div>
  <p>אנא היכנס ל<a href="%s" style="color: #0284c7; text-decoration: none;">לוח הבקרה</a> שלך כדי לאשר או לדחות את הבקשה תוך 48 שעות.</p>
  <div style="margin-top: 30px; text-align: center;">
    <a href="%s" style="background-color: #0284c7; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold;">צפה בבקשה</a>
  </div>
  <div style="margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb; text-align: center; color: #6b7280; font-size: 14px;">
    <p>&copy; %d MyStar - מיי סטאר. כל הזכויות שמורות.</p>
  </div>
</div>`,
		logoURL,
		req.CreatorName,
		req.FanName,
		domain.ShortOrderID(req.OrderID),
		domain.OrderTypeLabel(req.OrderType),
		creatorShare,
		formattedPrice,
		orderMessage,
		dashboardURL,
		dashboardURL,
		now.Year(),
	)
}
